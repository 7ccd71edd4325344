package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/tracker"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SessionSocket broadcasts live tracking data via WebSocket: one metrics
// message per processed frame and one event message per progression change.
type SessionSocket struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewSessionSocket creates a SessionSocket with no connected clients.
func NewSessionSocket() *SessionSocket {
	return &SessionSocket{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (s *SessionSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// PublishMetrics broadcasts the per-frame metrics and coaching instruction.
func (s *SessionSocket) PublishMetrics(metrics exercise.Metrics, instruction string) {
	s.publish(map[string]any{
		"type":        "metrics",
		"metrics":     metrics,
		"instruction": instruction,
		"timestamp":   time.Now().UnixMilli(),
	})
}

// PublishEvent broadcasts a progression event with the session snapshot.
func (s *SessionSocket) PublishEvent(event string, session tracker.Session) {
	s.publish(map[string]any{
		"type":      "event",
		"event":     event,
		"session":   session,
		"timestamp": time.Now().UnixMilli(),
	})
}

func (s *SessionSocket) publish(payload map[string]any) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.clients) == 0 {
		return
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("websocket marshal error: %v", err)
		return
	}

	for conn := range s.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
