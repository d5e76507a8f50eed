package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/df07/go-weekend-raytracer/pkg/storage"
)

// options holds the command line settings; zero values keep the scene's defaults
type options struct {
	sceneName string
	width     int
	samples   int
	depth     int
	workers   int
	seed      uint64
	output    string
	upload    bool
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "random", "Scene type: "+strings.Join(scene.Names(), ", "))
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	seed := flag.Uint64("seed", 0, "Random seed for scene population and sampling (0 = scene default)")
	output := flag.String("output", "", "Output image path; the extension picks the format")
	upload := flag.Bool("upload", false, "Upload the finished PNG to S3 (requires S3_BUCKET)")
	envFile := flag.String("env", ".env", "Environment file to load")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Weekend Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.List() {
			fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	opts := options{
		sceneName: *sceneType,
		width:     firstNonZero(*width, cfg.Width),
		samples:   firstNonZero(*samples, cfg.Samples),
		depth:     firstNonZero(*depth, cfg.MaxDepth),
		workers:   firstNonZero(*workers, cfg.Workers),
		seed:      firstNonZero(*seed, cfg.Seed),
		output:    *output,
		upload:    *upload,
	}

	fmt.Println("Starting Weekend Raytracer...")
	logger := renderer.NewDefaultLogger()

	filename, data, err := run(opts, cfg.OutputDir, logger)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.upload {
		uploader, err := storage.NewS3Uploader(cfg, logger)
		if err != nil {
			log.Fatalf("Error configuring upload: %v", err)
		}
		key := storage.RenderKey(opts.sceneName, time.Now())
		if _, err := uploader.Upload(context.Background(), key, data); err != nil {
			log.Fatalf("Upload failed: %v", err)
		}
	}
}

// run renders the selected scene, writes it to disk and returns the path and PNG bytes
func run(opts options, outputRoot string, logger core.Logger) (string, []byte, error) {
	selectedScene, err := createScene(opts.sceneName, opts.seed)
	if err != nil {
		return "", nil, err
	}
	applyOverrides(selectedScene, opts)

	if err := selectedScene.Validate(); err != nil {
		return "", nil, err
	}

	filename := opts.output
	if filename == "" {
		filename = defaultOutputPath(outputRoot, selectedScene.Name, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", nil, fmt.Errorf("create output directory: %w", err)
	}

	logger.Printf("Using %s scene (%d objects)...\n", selectedScene.Name, selectedScene.World.Len())

	var mu sync.Mutex
	lastReport := time.Now()
	progress := func(elapsedSamples int) {
		mu.Lock()
		defer mu.Unlock()
		if time.Since(lastReport) < time.Second {
			return
		}
		lastReport = time.Now()
		total := selectedScene.Config.Width * selectedScene.Config.Height * selectedScene.Config.SamplesPerPixel
		logger.Printf("%d / %d samples (%.0f%%)\n", elapsedSamples, total, 100*float64(elapsedSamples)/float64(total))
	}

	rt := renderer.NewRaytracer(selectedScene.World, selectedScene.Camera(), selectedScene.Config, logger)
	img, _, err := rt.RenderImage(progress)
	if err != nil {
		return "", nil, err
	}

	if err := imageio.Save(filename, img); err != nil {
		return "", nil, fmt.Errorf("error saving image: %w", err)
	}

	data, err := imageio.EncodePNG(img)
	if err != nil {
		return "", nil, fmt.Errorf("error encoding PNG: %w", err)
	}
	return filename, data, nil
}

// createScene creates a scene based on the scene type string
func createScene(sceneType string, seed uint64) (*scene.Scene, error) {
	if seed == 0 {
		seed = renderer.DefaultConfig().Seed
	}
	return scene.Create(sceneType, seed)
}

// applyOverrides replaces scene defaults with any non-zero command line values
func applyOverrides(s *scene.Scene, opts options) {
	if opts.width > 0 {
		s.SetWidth(opts.width)
	}
	if opts.samples > 0 {
		s.Config.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		s.Config.MaxDepth = opts.depth
	}
	if opts.workers > 0 {
		s.Config.NumWorkers = opts.workers
	}
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png under root
func defaultOutputPath(root, sceneName string, t time.Time) string {
	return filepath.Join(root, sceneName, fmt.Sprintf("render_%s.png", t.Format("20060102_150405")))
}

func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
