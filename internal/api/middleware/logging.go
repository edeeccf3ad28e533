package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tetris-go/internal/middleware"
)

// Logging creates request logging middleware tagged with the API component
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
