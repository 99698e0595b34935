// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
)

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error  string           `json:"error"`
	Counts map[string]int64 `json:"counts,omitempty"`
}

// ErrorLogger renders errors as JSON and logs server-side failures with
// request context. Handlers hold one and route every error through it so
// internal causes never leak into response bodies.
type ErrorLogger struct {
	Log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Render writes err as a JSON error response. Typed errors map to their
// HTTP status; anything else is a 500 with a generic body, logged with the
// underlying cause.
func (e *ErrorLogger) Render(w http.ResponseWriter, r *http.Request, err error) {
	if ae, ok := apperr.As(err); ok {
		if ae.Kind == apperr.KindInternal || ae.Kind == apperr.KindPartialFailure {
			e.Log.Error(ae.Message,
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(ae.Err))
		}
		writeJSON(w, ae.HTTPStatus(), errorBody{Error: ae.Message, Counts: ae.Counts})
		return
	}

	e.Log.Error("unhandled error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// BadRequest renders a 400 with the given message.
func (e *ErrorLogger) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// NotFound renders a 404 with the given message.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
