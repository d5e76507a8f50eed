package server

import (
	"sync"
)

// clientBufferSize is the number of undelivered events kept per client
const clientBufferSize = 64

// Event is a single server-sent event. An empty Name is a plain message event.
type Event struct {
	Name string
	Data string
}

// client is the event stream of one render id
type client struct {
	events chan Event
	done   chan struct{} // Closed when the render for this id has finished
}

// Broadcaster routes render events to the event stream of the matching client id.
// Sends never block: when a client's buffer is full the oldest event is dropped,
// so a slow or absent browser never stalls the render.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[uint64]*client
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[uint64]*client)}
}

// Open registers id with an initial "connected" event if it does not exist yet.
// Either the event stream or the render may open the client first.
func (b *Broadcaster) Open(id uint64) {
	b.subscribe(id)
}

// subscribe returns the client for id, opening it if needed
func (b *Broadcaster) subscribe(id uint64) *client {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.clients[id]; ok {
		return c
	}

	c := &client{
		events: make(chan Event, clientBufferSize),
		done:   make(chan struct{}),
	}
	c.events <- Event{Data: "connected"}
	b.clients[id] = c
	return c
}

// Send delivers an event to id's stream. It reports false if no such client exists.
func (b *Broadcaster) Send(id uint64, event Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.clients[id]
	if !ok {
		return false
	}

	for {
		select {
		case c.events <- event:
			return true
		default:
			// Buffer full, drop the oldest event and retry
			select {
			case <-c.events:
			default:
			}
		}
	}
}

// Close ends id's stream and removes the client. Events already buffered can still be read.
func (b *Broadcaster) Close(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.clients[id]; ok {
		close(c.done)
		delete(b.clients, id)
	}
}

// release removes c if it is still the client registered for id
func (b *Broadcaster) release(id uint64, c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.clients[id] == c {
		close(c.done)
		delete(b.clients, id)
	}
}

// Len returns the number of live client streams
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
