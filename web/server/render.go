package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/df07/go-weekend-raytracer/pkg/storage"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string // Scene name (e.g., "random")
	Width     int    // Image width; 0 keeps the scene default
	Samples   int    // Samples per pixel; 0 keeps the scene default
	MaxDepth  int    // Maximum bounce depth; -1 keeps the scene default
	Seed      uint64 // Render seed; 0 keeps the scene default
	Thumbnail int    // Longest edge of a downscaled response; 0 returns full size
}

// parseRenderRequest parses request parameters, falling back to the server configuration
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "random"}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", s.config.Width, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", s.config.Samples, 1, 10000); err != nil {
		return nil, err
	}
	defaultDepth := -1
	if s.config.MaxDepth > 0 {
		defaultDepth = s.config.MaxDepth
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", defaultDepth, 0, 1000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseUintParam(query, "seed", s.config.Seed); err != nil {
		return nil, err
	}
	if req.Thumbnail, err = parseIntParam(query, "thumbnail", 0, 0, 2000); err != nil {
		return nil, err
	}

	return req, nil
}

// createScene builds the requested scene with the request's overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	seed := req.Seed
	if seed == 0 {
		seed = renderer.DefaultConfig().Seed
	}

	sceneObj, err := scene.Create(req.Scene, seed)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.SetWidth(req.Width)
	}
	if req.Samples > 0 {
		sceneObj.Config.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth >= 0 {
		sceneObj.Config.MaxDepth = req.MaxDepth
	}
	if s.config.Workers > 0 {
		sceneObj.Config.NumWorkers = s.config.Workers
	}

	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// handleRender renders a scene for client id, streaming progress milestones to the id's
// event stream, and responds with the finished PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id, err := parseClientID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid scene: %v", err), http.StatusBadRequest)
		return
	}

	s.broadcaster.Open(id)
	// The event stream ends with the render, whether or not the browser is still listening
	defer s.broadcaster.Close(id)

	logger := NewWebLogger(id, s.broadcaster)
	logger.Printf("Rendering %s scene at %dx%d, %d samples per pixel\n",
		sceneObj.Name, sceneObj.Config.Width, sceneObj.Config.Height, sceneObj.Config.SamplesPerPixel)

	progress := func(elapsedSamples int) {
		s.broadcaster.Send(id, Event{Data: strconv.Itoa(elapsedSamples)})
	}

	rt := renderer.NewRaytracer(sceneObj.World, sceneObj.Camera(), sceneObj.Config, logger)
	img, _, err := rt.RenderImage(progress)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}

	data, err := imageio.EncodePNG(imageio.Thumbnail(img, req.Thumbnail))
	if err != nil {
		http.Error(w, fmt.Sprintf("Encode error: %v", err), http.StatusInternalServerError)
		return
	}

	if s.uploader != nil {
		key := storage.RenderKey(sceneObj.Name, time.Now())
		if fullKey, err := s.uploader.Upload(r.Context(), key, data); err != nil {
			// The render itself succeeded, so the image is still returned
			log.Printf("Render %d upload failed: %v", id, err)
		} else {
			w.Header().Set("X-Upload-Key", fullKey)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
