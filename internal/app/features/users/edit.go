// internal/app/features/users/edit.go
package users

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/staffhub/internal/app/dao"
	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/users. Every field is optional.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	p, err := dao.DecodeUserPatch(body)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Staff.CreateUser(ctx, p)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, u)
}

// HandleUpdate handles PUT and PATCH /api/users/{id}. Both are partial:
// fields absent from the body are left as they are.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	p, err := dao.DecodeUserPatch(body)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Staff.UpdateUserByID(ctx, chi.URLParam(r, "id"), p)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, u)
}

// HandleUpsertByMav handles PUT /api/users/mav/{mavId}: update the user
// holding that mav id, or create one. Answers 201 on create, 200 on update.
func (h *Handler) HandleUpsertByMav(w http.ResponseWriter, r *http.Request) {
	mavID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "mavId")), 10, 64)
	if err != nil || mavID < 0 {
		uierrors.BadRequest(w, "mav id must be a non-negative integer")
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	p, err := dao.DecodeUserPatch(body)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, created, err := h.Staff.UpsertUserByMavID(ctx, mavID, p)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	uierrors.WriteJSON(w, status, u)
}

// HandleDelete handles DELETE /api/users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	deleted, err := h.Staff.DeleteUserByID(ctx, id)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	if !deleted {
		uierrors.NotFound(w, "user not found")
		return
	}
	h.Log.Info("user removed via api", zap.String("user_id", id))
	uierrors.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
