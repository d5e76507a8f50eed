package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/df07/go-weekend-raytracer/pkg/storage"
)

//go:embed static/index.html
var indexHTML []byte

// Server handles web requests for the raytracer
type Server struct {
	config      *config.Config
	broadcaster *Broadcaster
	uploader    storage.Uploader // nil disables uploads
	mux         *http.ServeMux
}

// NewServer creates a new web server. uploader may be nil.
func NewServer(cfg *config.Config, uploader storage.Uploader) *Server {
	s := &Server{
		config:      cfg,
		broadcaster: NewBroadcaster(),
		uploader:    uploader,
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /render-event/{id}", s.handleRenderEvents)
	s.mux.HandleFunc("GET /render/{id}", s.handleRender)
	s.mux.HandleFunc("GET /size", s.handleSize)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/scenes", s.handleScenes)
	s.mux.HandleFunc("GET /api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.config.ServerAddress)
	return http.ListenAndServe(s.config.ServerAddress, s.Handler())
}

// handleIndex serves the embedded viewer page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSize reports the number of live event streams
func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%d", s.broadcaster.Len())
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(scene.List())
}

// handleRenderEvents streams progress events for one render id until the render finishes
func (s *Server) handleRenderEvents(w http.ResponseWriter, r *http.Request) {
	id, err := parseClientID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	c := s.broadcaster.subscribe(id)
	defer s.broadcaster.release(id, c)

	ctx := r.Context()
	for {
		select {
		case event := <-c.events:
			if err := s.sendSSEEvent(w, event); err != nil {
				return
			}
		case <-c.done:
			// Drain whatever the render sent before finishing
			for {
				select {
				case event := <-c.events:
					if err := s.sendSSEEvent(w, event); err != nil {
						return
					}
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// setSSEHeaders sets the headers of a server-sent event stream
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent writes one event and flushes it to the client
func (s *Server) sendSSEEvent(w http.ResponseWriter, event Event) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if event.Name != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", event.Data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// parseClientID reads the numeric client id from the request path
func parseClientID(r *http.Request) (uint64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid client id: %q", raw)
	}
	return id, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseUintParam parses an unsigned integer parameter from URL query
func parseUintParam(values url.Values, key string, defaultValue uint64) (uint64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
