package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizlive/quizlive/internal/model"
)

// ErrorResponse is the uniform error body shape: {"detail": <message>}
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// httpError combines an HTTP status code with a detail message
type httpError struct {
	status int
	detail string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.detail
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: he.detail})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found"}
	case errors.Is(err, model.ErrNameRequired):
		return &httpError{http.StatusBadRequest, "Name cannot be empty"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewValidationError creates a 400 error with the given detail
func NewValidationError(detail string) error {
	return &httpError{http.StatusBadRequest, detail}
}

// NewInternalError creates a 500 internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
