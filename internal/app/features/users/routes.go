// internal/app/features/users/routes.go
package users

import (
	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all user routes under the path where the caller mounts it.
// Typically: r.Mount("/api/users", users.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.With(ratelimit.Middleware(h.RefreshLimit, uierrors.TooManyRequests)).Post("/refresh", h.HandleRefresh)
	r.Put("/mav/{mavId}", h.HandleUpsertByMav)

	r.Get("/{id}", h.ServeUser)
	r.Put("/{id}", h.HandleUpdate)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	r.Get("/{id}/metrics", h.ServeMetrics)
	r.Post("/{id}/metrics", h.HandleAddMetric)

	return r
}
