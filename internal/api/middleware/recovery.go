package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tetris-go/internal/api/apierr"
	"github.com/mcoot/tetris-go/internal/middleware"
)

// Recovery turns handler panics into JSON INTERNAL_ERROR responses
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
