// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/staffhub/internal/app/staff"
	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.uber.org/zap"
)

// Kinds reported in the "kind" field of an error body.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindDuplicate  = "duplicate"
	KindServer     = "server"
	KindRateLimit  = "rate_limited"
	KindTooLarge   = "too_large"
)

// Body is the JSON shape of every error response.
type Body struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Classify maps an operation error to a status code and body. Server
// errors get a generic message; their detail belongs in the log.
func Classify(err error) (int, Body) {
	var ve *models.ValidationError
	switch {
	case stderrors.As(err, &ve):
		return http.StatusBadRequest, Body{Error: ve.Error(), Kind: KindValidation, Field: ve.Field}
	case stderrors.Is(err, staff.ErrValidation):
		return http.StatusBadRequest, Body{Error: err.Error(), Kind: KindValidation}
	case stderrors.Is(err, staff.ErrInvalidID):
		return http.StatusBadRequest, Body{Error: "invalid id", Kind: KindValidation}
	case stderrors.Is(err, staff.ErrNotFound):
		return http.StatusNotFound, Body{Error: "not found", Kind: KindNotFound}
	case stderrors.Is(err, staff.ErrDuplicate):
		return http.StatusConflict, Body{Error: "duplicate value", Kind: KindDuplicate}
	case staff.IsPartialFailure(err):
		return http.StatusInternalServerError, Body{Error: "write partially applied", Kind: KindServer}
	}
	return http.StatusInternalServerError, Body{Error: "internal server error", Kind: KindServer}
}

// Render writes the response for err and logs it. Client errors are logged
// at debug, server errors at error.
func Render(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status, body := Classify(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
	} else {
		log.Debug("request rejected", fields...)
	}
	WriteJSON(w, status, body)
}

// BadRequest writes a validation error with msg.
func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, Body{Error: msg, Kind: KindValidation})
}

// NotFound writes a not-found error with msg.
func NotFound(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusNotFound, Body{Error: msg, Kind: KindNotFound})
}

// TooManyRequests answers a request turned away by a rate limiter.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	WriteJSON(w, http.StatusTooManyRequests, Body{Error: "too many requests", Kind: KindRateLimit})
}

// UnreadableBody answers a request whose body could not be read. A body
// cut off by http.MaxBytesReader gets 413; anything else is a 400.
func UnreadableBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		WriteJSON(w, http.StatusRequestEntityTooLarge, Body{Error: "request body too large", Kind: KindTooLarge})
		return
	}
	BadRequest(w, "request body could not be read")
}
