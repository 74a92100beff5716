// internal/app/features/users/handler.go
package users

import (
	"io"
	"net/http"

	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/staff"
	"github.com/dalemusser/staffhub/internal/app/system/limits"
	"github.com/dalemusser/staffhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for staff users and their metrics.
// It holds the staff service and logger built in BuildHandler.
//
// RefreshLimit, when set, throttles POST /refresh per client IP.
type Handler struct {
	Staff        *staff.Service
	Log          *zap.Logger
	RefreshLimit *ratelimit.Limiter
}

func NewHandler(svc *staff.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Staff: svc,
		Log:   logger,
	}
}

// readBody returns the request body, writing the error response when it
// cannot be read.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody))
	if err != nil {
		uierrors.UnreadableBody(w, err)
		return nil, false
	}
	return b, true
}
