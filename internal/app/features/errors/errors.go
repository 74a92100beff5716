// internal/app/features/errors/errors.go
package errors

import "net/http"

// Handler serves the router-level fallbacks.
// No DB needed; it only writes JSON.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers requests for routes that do not exist.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "no route for "+r.Method+" "+r.URL.Path)
}

// MethodNotAllowed answers requests using a method the route lacks.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusMethodNotAllowed, Body{
		Error: "method " + r.Method + " not allowed",
		Kind:  KindValidation,
	})
}
