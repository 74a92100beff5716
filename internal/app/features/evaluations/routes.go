// internal/app/features/evaluations/routes.go
package evaluations

import "github.com/go-chi/chi/v5"

// Routes mounts the evaluation routes.
// Typically: r.Mount("/api/evaluations", evaluations.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeEvaluation)
	r.Put("/{id}", h.HandleUpdate)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
