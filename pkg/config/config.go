// Package config reads process configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI and the web server
type Config struct {
	OutputDir     string // Root directory for rendered images
	ServerAddress string // Listen address of the web server
	Width         int    // Default image width
	Samples       int    // Default samples per pixel
	MaxDepth      int    // Default maximum bounce depth
	Workers       int    // Render workers (0 = CPU count)
	Seed          uint64 // Default render seed

	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Prefix    string // Key prefix for uploaded renders
}

// S3Enabled reports whether enough S3 settings are present to upload renders
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Load reads envFile into the environment, if it exists, and builds a Config from
// RAYTRACER_* and S3_* variables. Variables already set in the environment win over
// the file. An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		OutputDir:     getEnv("RAYTRACER_OUTPUT_DIR", "output"),
		ServerAddress: getEnv("RAYTRACER_ADDRESS", ":8080"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Prefix:      getEnv("S3_PREFIX", "renders/"),
	}

	var errs []error
	var err error
	if cfg.Width, err = getEnvInt("RAYTRACER_WIDTH", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.Samples, err = getEnvInt("RAYTRACER_SAMPLES", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxDepth, err = getEnvInt("RAYTRACER_MAX_DEPTH", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.Workers, err = getEnvInt("RAYTRACER_WORKERS", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.Seed, err = getEnvUint("RAYTRACER_SEED", 0); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}
