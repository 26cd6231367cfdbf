package handlers

import (
	"errors"
	"net/http"

	"foodlog/internal/forms"
	"foodlog/internal/services"
	"foodlog/internal/web"
)

type HomeHandler struct {
	*Responder
	feedback *services.FeedbackService
}

func NewHomeHandler(resp *Responder, feedback *services.FeedbackService) *HomeHandler {
	return &HomeHandler{Responder: resp, feedback: feedback}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "home.html", web.Page{})
}

// SubmitFeedback stores the home page feedback form. Invalid submissions are
// redisplayed and nothing is stored.
func (h *HomeHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := forms.ParseFeedback(r.PostForm)

	if _, err := h.feedback.Submit(r.Context(), form); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			h.page(w, r, http.StatusOK, "home.html", web.Page{Form: form, Errors: verr.Fields})
			return
		}
		h.serverError(w, r, err)
		return
	}
	web.AddFlash(w, r, "Thank you for your feedback!")
	h.redirect(w, r, "/")
}

// Static serves a page with no state of its own.
func (h *HomeHandler) Static(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, r, http.StatusOK, page, web.Page{Title: title})
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
