package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/storage"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	addr := flag.String("addr", "", "Address to serve on (default from RAYTRACER_ADDRESS or :8080)")
	envFile := flag.String("env", ".env", "Environment file to load")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ServerAddress = *addr
	}

	var uploader storage.Uploader
	s3Uploader, err := storage.NewS3Uploader(cfg, renderer.NewDefaultLogger())
	switch {
	case err == nil:
		uploader = s3Uploader
		log.Printf("Uploading renders to S3 bucket %s", cfg.S3Bucket)
	case errors.Is(err, storage.ErrNoBucket):
		// Uploads disabled
	default:
		log.Printf("Error configuring S3: %v", err)
		os.Exit(1)
	}

	webServer := server.NewServer(cfg, uploader)

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Visit http://localhost%s to start rendering", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
