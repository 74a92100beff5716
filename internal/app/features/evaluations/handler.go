// internal/app/features/evaluations/handler.go
package evaluations

import (
	"io"
	"net/http"

	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/staff"
	"github.com/dalemusser/staffhub/internal/app/system/limits"
	"go.uber.org/zap"
)

// Handler serves the evaluation API.
type Handler struct {
	Staff *staff.Service
	Log   *zap.Logger
}

func NewHandler(svc *staff.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Staff: svc,
		Log:   logger,
	}
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody))
	if err != nil {
		uierrors.UnreadableBody(w, err)
		return nil, false
	}
	return b, true
}
