// Package realtime fans debate events out to live observer connections.
//
// It provides best-effort delivery with no guarantees regarding durability,
// retries, or redelivery on reconnect. The hub is not a message broker: it is
// intended for mirroring the ledger to connected clients as it grows.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"debate-arena/domain"
)

// Sink is one live connection. Send must be safe for concurrent use and
// return an error when the connection can no longer accept payloads.
type Sink interface {
	Send(payload []byte) error
	Close()
}

// Hub keeps one connection set per session. Subscribe, Unsubscribe and
// Broadcast are safe under concurrent invocation from independent
// connection handlers.
type Hub struct {
	log *slog.Logger

	mu       sync.RWMutex
	sessions map[domain.SessionID]map[Sink]struct{}
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:      log,
		sessions: make(map[domain.SessionID]map[Sink]struct{}),
	}
}

type subscribedAck struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
}

// Subscribe registers the sink and acknowledges it with a payload naming the
// session topic. A sink that cannot even take the ack is dropped on the spot.
func (h *Hub) Subscribe(id domain.SessionID, topic string, sink Sink) error {
	h.mu.Lock()
	set, ok := h.sessions[id]
	if !ok {
		set = make(map[Sink]struct{})
		h.sessions[id] = set
	}
	set[sink] = struct{}{}
	h.mu.Unlock()

	ack, _ := json.Marshal(subscribedAck{Type: "subscribed", SessionID: string(id), Topic: topic})
	if err := sink.Send(ack); err != nil {
		h.Unsubscribe(id, sink)
		return err
	}
	h.log.Debug("observer subscribed", "session_id", id, "observers", h.SubscriberCount(id))
	return nil
}

// Unsubscribe removes the sink; the session's connection-set entry is deleted
// once empty. The session itself is untouched.
func (h *Hub) Unsubscribe(id domain.SessionID, sink Sink) {
	h.mu.Lock()
	if set, ok := h.sessions[id]; ok {
		delete(set, sink)
		if len(set) == 0 {
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()
	h.log.Debug("observer unsubscribed", "session_id", id)
}

// Broadcast delivers the payload to every connection currently subscribed to
// the session. Delivery iterates over a snapshot taken at call time, so a
// connection failing mid-broadcast never aborts delivery to the rest; failed
// connections are closed and removed from future broadcasts. Returns the
// number of successful deliveries.
func (h *Hub) Broadcast(id domain.SessionID, payload []byte) int {
	h.mu.RLock()
	set := h.sessions[id]
	sinks := make([]Sink, 0, len(set))
	for sink := range set {
		sinks = append(sinks, sink)
	}
	h.mu.RUnlock()

	sent := 0
	for _, sink := range sinks {
		if err := sink.Send(payload); err != nil {
			h.Unsubscribe(id, sink)
			sink.Close()
			continue
		}
		sent++
	}
	h.log.Debug("broadcast result", "session_id", id, "sent_to", sent, "dropped", len(sinks)-sent)
	return sent
}

// Release closes and removes every connection of a session. Called when the
// session itself is closed.
func (h *Hub) Release(id domain.SessionID) {
	h.mu.Lock()
	set := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	for sink := range set {
		sink.Close()
	}
}

func (h *Hub) SubscriberCount(id domain.SessionID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[id])
}
