package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"foodlog/internal/forms"
	"foodlog/internal/services"
	"foodlog/internal/web"
)

type LogHandler struct {
	*Responder
	diary *services.DiaryService
}

func NewLogHandler(resp *Responder, diary *services.DiaryService) *LogHandler {
	return &LogHandler{Responder: resp, diary: diary}
}

// Calendar lists the user's logs, newest date first, with their totals.
func (h *LogHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	logs, err := h.diary.Calendar(r.Context(), currentUserID(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.page(w, r, http.StatusOK, "calendar.html", web.Page{Title: "My logs", Data: logs})
}

func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	log, err := h.diary.CreateLog(r.Context(), currentUserID(r), r.PostForm.Get("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			web.AddFlash(w, r, "Please choose a date.")
			h.redirect(w, r, "/calendar")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.redirect(w, r, logPath(log.ID))
}

func (h *LogHandler) View(w http.ResponseWriter, r *http.Request) {
	logID, ok := urlParamID(r, "logID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	detail, err := h.diary.ViewLog(r.Context(), currentUserID(r), logID)
	if err != nil {
		h.diaryError(w, r, err)
		return
	}
	h.page(w, r, http.StatusOK, "view.html", web.Page{Title: detail.Log.Date, Data: detail})
}

// AddFood prices grams of a reference food and appends it to the log. It
// serves both the log page's own form and the dedicated endpoint.
func (h *LogHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	logID, ok := urlParamID(r, "logID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := forms.ParseSearch(r.PostForm)
	userID := currentUserID(r)

	_, err := h.diary.AddFood(r.Context(), userID, logID, form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			detail, derr := h.diary.ViewLog(r.Context(), userID, logID)
			if derr != nil {
				h.diaryError(w, r, derr)
				return
			}
			h.page(w, r, http.StatusOK, "view.html", web.Page{
				Title:  detail.Log.Date,
				Form:   form,
				Errors: verr.Fields,
				Data:   detail,
			})
		case errors.Is(err, services.ErrFoodNotFound):
			web.AddFlash(w, r, "Food not found.")
			h.redirect(w, r, logPath(logID))
		default:
			h.diaryError(w, r, err)
		}
		return
	}
	h.redirect(w, r, logPath(logID))
}

func (h *LogHandler) RemoveFood(w http.ResponseWriter, r *http.Request) {
	logID, ok := urlParamID(r, "logID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	prodID, ok := urlParamID(r, "prodID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.diary.RemoveFood(r.Context(), currentUserID(r), logID, prodID); err != nil {
		h.diaryError(w, r, err)
		return
	}
	h.redirect(w, r, logPath(logID))
}

func (h *LogHandler) Remove(w http.ResponseWriter, r *http.Request) {
	logID, ok := urlParamID(r, "logID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.diary.DeleteLog(r.Context(), currentUserID(r), logID); err != nil {
		h.diaryError(w, r, err)
		return
	}
	h.redirect(w, r, "/calendar")
}

func logPath(id int) string {
	return "/view/" + strconv.Itoa(id)
}
