package renderer

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/imageio"
)

// ErrInvalidConfig is returned when render parameters cannot produce an image
var ErrInvalidConfig = errors.New("invalid render configuration")

// DefaultProgressInterval is the number of samples between progress callbacks
const DefaultProgressInterval = 1000

// ProgressFunc receives the total number of samples completed so far.
// It is called from render workers and must be safe for concurrent use.
type ProgressFunc func(elapsedSamples int)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains rendering configuration
type Config struct {
	Width            int    // Image width in pixels
	Height           int    // Image height in pixels
	SamplesPerPixel  int    // Number of rays per pixel
	MaxDepth         int    // Maximum ray bounce depth
	NumWorkers       int    // Number of parallel workers (0 = use CPU count)
	Seed             uint64 // Base seed; each pixel derives its own stream from it
	ProgressInterval int    // Samples between progress callbacks (0 = DefaultProgressInterval)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:            400,
		Height:           225,
		SamplesPerPixel:  10,
		MaxDepth:         50,
		NumWorkers:       0,
		Seed:             42,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Validate reports every parameter that is out of range
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if c.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.NumWorkers))
	}
	if c.ProgressInterval < 0 {
		errs = append(errs, fmt.Errorf("progress interval must not be negative, got %d", c.ProgressInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Raytracer renders a world through a camera into an RGB byte buffer
type Raytracer struct {
	world  geometry.Shape
	camera *Camera
	config Config
	logger core.Logger

	// newSampler returns the private random stream for a pixel
	newSampler func(pixelIndex int) core.Sampler
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(world geometry.Shape, camera *Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.ProgressInterval == 0 {
		config.ProgressInterval = DefaultProgressInterval
	}

	rt := &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		logger: logger,
	}
	rt.newSampler = func(pixelIndex int) core.Sampler {
		return core.NewSeededSampler(rt.config.Seed, uint64(pixelIndex))
	}
	return rt
}

// Config returns the configuration the raytracer renders with
func (rt *Raytracer) Config() Config {
	return rt.config
}

// renderJob holds the mutable state of a single render
type renderJob struct {
	rt         *Raytracer
	buffer     []byte
	progress   ProgressFunc
	samples    atomic.Int64
	milestones atomic.Int64
}

// renderPixel samples one pixel and writes its tone-mapped color at the pixel's own offset
func (job *renderJob) renderPixel(task PixelTask) int {
	rt := job.rt
	cfg := rt.config
	sampler := rt.newSampler(task.Index)

	// A single row or column still spans the whole viewport
	uDivisor := float64(max(cfg.Width-1, 1))
	vDivisor := float64(max(cfg.Height-1, 1))

	var stats PixelStats
	for sample := 0; sample < cfg.SamplesPerPixel; sample++ {
		u := (float64(task.Col) + sampler.Get1D()) / uDivisor
		// Row 0 is the top of the image, where v is 1
		v := 1.0 - (float64(task.Row)+sampler.Get1D())/vDivisor

		ray := rt.camera.GetRay(u, v, sampler)
		stats.AddSample(RayColor(ray, rt.world, cfg.MaxDepth, sampler))

		job.countSample()
	}

	rgb := ToRGB(stats.GetColor())
	offset := task.Index * 3
	job.buffer[offset] = rgb[0]
	job.buffer[offset+1] = rgb[1]
	job.buffer[offset+2] = rgb[2]

	return stats.SampleCount
}

// countSample advances the shared sample counter and reports every crossed milestone
func (job *renderJob) countSample() {
	elapsed := job.samples.Add(1)
	if job.progress != nil && elapsed%int64(job.rt.config.ProgressInterval) == 0 {
		job.milestones.Add(1)
		job.progress(int(elapsed))
	}
}

// RenderBuffer renders the full image and returns it as row-major RGB bytes,
// three per pixel, starting from the top-left corner.
func (rt *Raytracer) RenderBuffer(progress ProgressFunc) ([]byte, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	cfg := rt.config
	numPixels := cfg.Width * cfg.Height
	job := &renderJob{
		rt:       rt,
		buffer:   make([]byte, numPixels*3),
		progress: progress,
	}

	pool := NewWorkerPool(job, cfg.NumWorkers)
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (using %d workers)...\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, pool.GetNumWorkers())

	start := time.Now()
	pool.Start()

	go func() {
		for row := 0; row < cfg.Height; row++ {
			for col := 0; col < cfg.Width; col++ {
				pool.SubmitTask(PixelTask{Index: row*cfg.Width + col, Row: row, Col: col})
			}
		}
		pool.Stop()
	}()

	stats := RenderStats{
		SamplesPerPixel: cfg.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
	}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.TotalPixels++
		stats.TotalSamples += result.Samples
	}
	stats.Duration = time.Since(start)
	stats.Milestones = int(job.milestones.Load())

	rt.logger.Printf("Rendered %d samples in %v (%.0f samples/s)\n",
		stats.TotalSamples, stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())

	return job.buffer, stats, nil
}

// RenderImage renders the full image into an RGBA image
func (rt *Raytracer) RenderImage(progress ProgressFunc) (*image.RGBA, RenderStats, error) {
	buffer, stats, err := rt.RenderBuffer(progress)
	if err != nil {
		return nil, stats, err
	}

	img, err := imageio.BufferToImage(buffer, rt.config.Width, rt.config.Height)
	if err != nil {
		return nil, stats, fmt.Errorf("convert buffer: %w", err)
	}
	return img, stats, nil
}

// RaytraceBuffer renders world through camera with the default seed and worker count
// and returns width*height*3 RGB bytes in row-major order, top row first.
// progress may be nil.
func RaytraceBuffer(width, height, samplesPerPixel, maxDepth int, world geometry.Shape, camera *Camera, progress ProgressFunc) ([]byte, error) {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = samplesPerPixel
	config.MaxDepth = maxDepth

	buffer, _, err := NewRaytracer(world, camera, config, nil).RenderBuffer(progress)
	return buffer, err
}

// Raytrace renders like RaytraceBuffer and writes the result to outputPath.
// The image format is chosen from the file extension.
func Raytrace(outputPath string, width, height, samplesPerPixel, maxDepth int, world geometry.Shape, camera *Camera, progress ProgressFunc) error {
	buffer, err := RaytraceBuffer(width, height, samplesPerPixel, maxDepth, world, camera, progress)
	if err != nil {
		return err
	}

	img, err := imageio.BufferToImage(buffer, width, height)
	if err != nil {
		return fmt.Errorf("convert buffer: %w", err)
	}
	if err := imageio.Save(outputPath, img); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}
