package middleware

import (
	"log/slog"
	"net/http"

	"github.com/quizlive/quizlive/internal/api/apierr"
	"github.com/quizlive/quizlive/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics surface as a 500 with a JSON detail message, never a fault trace.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
