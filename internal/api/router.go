package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tetris-go/internal/api/apierr"
	"github.com/mcoot/tetris-go/internal/api/handler"
	"github.com/mcoot/tetris-go/internal/api/middleware"
	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/api/stream"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Scores handler.ScoreReader
	// Game is optional; without it GET /game always reports no game
	Game handler.SnapshotSource
	// Stream is optional; it carries live snapshots for /game/events
	Stream *stream.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	game := cfg.Game
	if game == nil {
		game = noGame{}
	}

	// Create handlers
	scoreHandler := handler.NewScoreHandler(cfg.Scores)
	gameHandler := handler.NewGameHandler(game, cfg.Stream)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/scores", scoreHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/scores/{id}", scoreHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/events", gameHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}
