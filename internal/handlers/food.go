package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"foodlog/internal/services"
)

type FoodHandler struct {
	*Responder
	diary *services.DiaryService
}

func NewFoodHandler(resp *Responder, diary *services.DiaryService) *FoodHandler {
	return &FoodHandler{Responder: resp, diary: diary}
}

// Names godoc
// @Summary List reference food names
// @Description Returns every food name in the reference table, sorted, for autocomplete
// @Tags food
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /food [get]
func (h *FoodHandler) Names(w http.ResponseWriter, r *http.Request) {
	names, err := h.diary.FoodNames(r.Context())
	if err != nil {
		h.logger.Error("list food names", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}
