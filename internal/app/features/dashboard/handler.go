// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	metricsstore "github.com/dalemusser/staffhub/internal/app/store/metrics"
	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// ServeDashboard handles GET /api/dashboard with the staff totals. The
// counts are read straight from the store, not from the cache.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB)
	h.Log.Debug("dashboard counts", zap.Int64("users", counts.Users), zap.Int64("evaluations", counts.Evaluations))
	uierrors.WriteJSON(w, http.StatusOK, counts)
}
