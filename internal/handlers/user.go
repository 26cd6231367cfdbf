package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"foodlog/internal/repository"
	"foodlog/internal/services"
)

type UserHandler struct {
	auth   *services.AuthService
	logger *zap.Logger
}

func NewUserHandler(auth *services.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the profile of the session user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserDTO
// @Failure 404 {object} map[string]string "Account no longer exists"
// @Router /me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.User(r.Context(), currentUserID(r))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		h.logger.Error("load current user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	writeJSON(w, http.StatusOK, ToUserDTO(*u))
}

// IsAdmin reports whether userID may use the admin API. Unknown users are
// not admins.
func (h *UserHandler) IsAdmin(ctx context.Context, userID int) (bool, error) {
	u, err := h.auth.User(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin, nil
}

// Exists reports whether a session's user is still registered.
func (h *UserHandler) Exists(ctx context.Context, userID int) (bool, error) {
	_, err := h.auth.User(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
