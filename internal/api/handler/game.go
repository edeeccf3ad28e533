package handler

import (
	"net/http"

	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/api/stream"
	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// SnapshotSource provides the state of the game currently being played
type SnapshotSource interface {
	CurrentSnapshot() (tetris.Snapshot, error)
}

// GameHandler serves the live game for spectators
type GameHandler struct {
	source SnapshotSource
	hub    *stream.Hub
}

// NewGameHandler creates a new game handler. hub may be nil when the
// server has no live game to stream.
func NewGameHandler(source SnapshotSource, hub *stream.Hub) *GameHandler {
	return &GameHandler{source: source, hub: hub}
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.source.CurrentSnapshot()
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSnapshotFromEngine(snap))
}

// Events handles GET /api/v1/game/events, a server-sent event stream of
// snapshots
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		WriteError(w, model.ErrNoGameInProgress)
		return
	}
	stream.ServeSSE(w, r, h.hub)
}
