package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	mw "foodlog/internal/middleware"
	"foodlog/internal/repository"
	"foodlog/internal/services"
	"foodlog/internal/web"
)

// Responder renders HTML pages with the session user and pending flashes,
// and maps unexpected errors to logged 500 pages.
type Responder struct {
	renderer *web.Renderer
	auth     *services.AuthService
	logger   *zap.Logger
}

func NewResponder(renderer *web.Renderer, auth *services.AuthService, logger *zap.Logger) *Responder {
	return &Responder{renderer: renderer, auth: auth, logger: logger}
}

func (p *Responder) page(w http.ResponseWriter, r *http.Request, status int, name string, data web.Page) {
	if id, ok := mw.UserIDFromContext(r.Context()); ok {
		user, err := p.auth.User(r.Context(), id)
		switch {
		case err == nil:
			data.User = user
		case !errors.Is(err, repository.ErrNotFound):
			p.serverError(w, r, err)
			return
		}
	}
	data.Flashes = append(web.PopFlashes(w, r), data.Flashes...)

	if err := p.renderer.Render(w, status, name, data); err != nil {
		p.logger.Error("render failed", zap.String("page", name), zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (p *Responder) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	if rerr := p.renderer.Render(w, http.StatusInternalServerError, "error.html", web.Page{
		Title: "Something went wrong",
		Data:  "Please try again later.",
	}); rerr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page. It is also installed as the router's
// fallback.
func (p *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, http.StatusNotFound, "error.html", web.Page{
		Title: "Page not found",
		Data:  "The page you asked for does not exist.",
	})
}

func (p *Responder) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// diaryError maps diary service errors to responses. Other users' logs are
// never shown; the requester is sent back to their own calendar.
func (p *Responder) diaryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrLogNotFound), errors.Is(err, services.ErrEntryNotFound):
		p.NotFound(w, r)
	case errors.Is(err, services.ErrNotOwner):
		p.redirect(w, r, "/calendar")
	default:
		p.serverError(w, r, err)
	}
}

func urlParamID(r *http.Request, key string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUserID is only called behind RequireAuth.
func currentUserID(r *http.Request) int {
	id, _ := mw.UserIDFromContext(r.Context())
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
