package server

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by mirroring messages into a render's event stream
type WebLogger struct {
	renderID    uint64
	broadcaster *Broadcaster
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID uint64, broadcaster *Broadcaster) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		broadcaster: broadcaster,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[render %d] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.broadcaster == nil {
		return
	}

	data, err := json.Marshal(ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	})
	if err != nil {
		return
	}
	wl.broadcaster.Send(wl.renderID, Event{Name: "console", Data: string(data)})
}
