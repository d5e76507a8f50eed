// Package storage uploads finished renders to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 10 * time.Second

// ErrNoBucket is returned when S3 uploads are requested without a bucket
var ErrNoBucket = errors.New("no S3 bucket configured")

// Uploader stores encoded images under a key
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
}

// S3Uploader puts objects into a single bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Uploader creates an uploader from the S3 settings in cfg.
// Static credentials are used when an access key is set; otherwise the default
// AWS credential chain applies.
func NewS3Uploader(cfg *config.Config, logger core.Logger) (*S3Uploader, error) {
	if !cfg.S3Enabled() {
		return nil, ErrNoBucket
	}

	s3Config := &aws.Config{
		Region:           aws.String(cfg.S3Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.S3AccessKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.S3Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}

	return newS3Uploader(s3.New(sess), cfg.S3Bucket, cfg.S3Prefix, logger), nil
}

func newS3Uploader(client s3iface.S3API, bucket, prefix string, logger core.Logger) *S3Uploader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Upload stores a PNG under the uploader's prefix and returns the full object key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	fullKey := path.Join(u.prefix, key)
	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", fullKey, u.bucket, size)
	return fullKey, nil
}

// RenderKey names the object for a render of sceneName finished at t
func RenderKey(sceneName string, t time.Time) string {
	return path.Join(sceneName, fmt.Sprintf("render_%s.png", t.Format("20060102_150405")))
}
