package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"foodlog/internal/repository"
	"foodlog/internal/services"
)

type AdminHandler struct {
	stats    *repository.StatsRepository
	feedback *services.FeedbackService
	logger   *zap.Logger
}

func NewAdminHandler(stats *repository.StatsRepository, feedback *services.FeedbackService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, feedback: feedback, logger: logger}
}

// Overview godoc
// @Summary Get admin overview
// @Description Returns row counts for users, logs, entries, feedback and reference foods (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OverviewDTO
// @Failure 401 {object} map[string]string "Missing session"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/overview [get]
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.Overview(r.Context())
	if err != nil {
		h.logger.Error("admin overview", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	writeJSON(w, http.StatusOK, ToOverviewDTO(out))
}

// Feedback godoc
// @Summary List feedback
// @Description Returns decrypted feedback newest first, optionally only from one sender (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email query string false "Sender email"
// @Param limit query int false "Maximum rows (default and cap 200)"
// @Success 200 {array} FeedbackDTO
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/feedback [get]
func (h *AdminHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	rows, err := h.feedback.List(r.Context(), q.Get("email"), limit)
	if err != nil {
		h.logger.Error("admin feedback", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	writeJSON(w, http.StatusOK, ToFeedbackDTOs(rows))
}
