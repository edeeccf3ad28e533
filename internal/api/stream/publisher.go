package stream

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// Event names sent to spectators
const (
	EventSnapshot = "snapshot"
	EventGameOver = "game_over"
)

// Publisher turns engine snapshots into stream events
type Publisher struct {
	hub    *Hub
	logger *slog.Logger
}

// NewPublisher creates a publisher broadcasting on hub
func NewPublisher(hub *Hub, logger *slog.Logger) *Publisher {
	return &Publisher{hub: hub, logger: logger}
}

// Publish broadcasts the snapshot; it has the signature of a session
// observer
func (p *Publisher) Publish(snap tetris.Snapshot) {
	data, err := json.Marshal(response.GameSnapshotFromEngine(snap))
	if err != nil {
		p.logger.Error("stream failed to encode snapshot", slog.String("error", err.Error()))
		return
	}

	event := EventSnapshot
	if snap.Over {
		event = EventGameOver
	}
	p.hub.BroadcastEvent(event, string(data))
}
