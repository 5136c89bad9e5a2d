package widgetspec

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SnapshotEvent is the wire form of one engine tick pushed to subscribers.
type SnapshotEvent struct {
	WidgetID string       `json:"widgetId"`
	Result   RenderResult `json:"result"`
	At       time.Time    `json:"at"`
}

// SnapshotBroadcaster fans out render snapshots to in-process subscribers.
// It plugs into an Engine as its snapshot sink.
type SnapshotBroadcaster struct {
	mu   sync.RWMutex
	subs map[int]chan SnapshotEvent
	next int
}

// NewSnapshotBroadcaster creates a broadcaster.
func NewSnapshotBroadcaster() *SnapshotBroadcaster {
	return &SnapshotBroadcaster{
		subs: make(map[int]chan SnapshotEvent),
	}
}

// SnapshotSink adapts the broadcaster to an engine's OnSnapshot callback for
// one widget. Slow subscribers drop events rather than stalling the tick.
func (b *SnapshotBroadcaster) SnapshotSink(widgetID string) SnapshotFunc {
	return func(snapshot Snapshot) {
		event := SnapshotEvent{
			WidgetID: widgetID,
			Result:   snapshot.Result,
			At:       snapshot.At,
		}
		b.mu.RLock()
		defer b.mu.RUnlock()
		for _, ch := range b.subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// Subscribe returns a channel of snapshot events and a cancel func.
func (b *SnapshotBroadcaster) Subscribe() (<-chan SnapshotEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan SnapshotEvent, 8)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams snapshot events as JSON.
func (b *SnapshotBroadcaster) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := b.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for render snapshots.
func (b *SnapshotBroadcaster) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := b.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
