// Package web renders the server side HTML pages and carries flash messages
// between redirects.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"foodlog/internal/forms"
	"foodlog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	User    *models.User
	Flashes []string
	Form    any
	Errors  forms.Errors
	Data    any
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"kcal": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"num":  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		page := name[len("templates/"):]
		if page == "base.html" {
			continue
		}
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into a buffer before writing the status and body.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
