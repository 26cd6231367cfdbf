package handlers

import (
	"errors"
	"net/http"
	"strings"

	"foodlog/internal/forms"
	mw "foodlog/internal/middleware"
	"foodlog/internal/services"
	"foodlog/internal/web"
)

type AuthHandler struct {
	*Responder
	auth     *services.AuthService
	sessions *mw.AuthMiddleware
}

func NewAuthHandler(resp *Responder, auth *services.AuthService, sessions *mw.AuthMiddleware) *AuthHandler {
	return &AuthHandler{Responder: resp, auth: auth, sessions: sessions}
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := mw.UserIDFromContext(r.Context()); ok {
		h.redirect(w, r, "/calendar")
		return
	}
	h.page(w, r, http.StatusOK, "signup.html", web.Page{Title: "Sign up"})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := forms.ParseSignup(r.PostForm)

	user, err := h.auth.Register(r.Context(), form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			h.page(w, r, http.StatusOK, "signup.html", web.Page{Title: "Sign up", Form: form, Errors: verr.Fields})
		case errors.Is(err, services.ErrEmailTaken):
			h.page(w, r, http.StatusOK, "signup.html", web.Page{
				Title:  "Sign up",
				Form:   form,
				Errors: forms.Errors{"email": "A user already exists with that email address."},
			})
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if err := h.sessions.StartSession(w, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.redirect(w, r, "/calendar")
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := mw.UserIDFromContext(r.Context()); ok {
		h.redirect(w, r, "/calendar")
		return
	}
	form := forms.LoginForm{Next: r.URL.Query().Get("next")}
	h.page(w, r, http.StatusOK, "login.html", web.Page{Title: "Log in", Form: form})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := forms.ParseLogin(r.PostForm)

	user, err := h.auth.Login(r.Context(), form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			h.page(w, r, http.StatusOK, "login.html", web.Page{Title: "Log in", Form: form, Errors: verr.Fields})
		case errors.Is(err, services.ErrInvalidCredentials):
			h.page(w, r, http.StatusOK, "login.html", web.Page{
				Title:   "Log in",
				Form:    form,
				Flashes: []string{"Invalid email or password."},
			})
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if err := h.sessions.StartSession(w, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.redirect(w, r, safeNext(form.Next))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.EndSession(w)
	h.redirect(w, r, "/login")
}

// safeNext only follows local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/calendar"
	}
	return next
}
