// Package handler contains the HTTP request handlers: they parse form
// input, call the services, and render pages or redirect. No business
// logic lives here.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/movie-ratings/internal/auth"
)

// pageData is what every template receives. Data carries the page-specific
// payload; the rest is shared chrome (title, flash, login state).
type pageData struct {
	Title         string
	Flash         string
	CurrentUserID string
	Data          any
}

// Renderer holds the parsed template set, one entry per page.
//
// Each page template is parsed together with base.html so the page's
// {{define "content"}} block fills the base layout's placeholder. Parsing
// happens once at startup — a broken template fails server construction
// instead of the first request.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// pageNames lists every page template under the template dir.
var pageNames = []string{
	"home",
	"user_list",
	"user_detail",
	"movie_list",
	"movie_detail",
	"register_form",
	"login_form",
	"error",
}

// NewRenderer parses all page templates from templateDir.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	base := filepath.Join(templateDir, "base.html")

	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(base, filepath.Join(templateDir, name+".html"))
		if err != nil {
			return nil, fmt.Errorf("handler: parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes a page. It pops the pending flash message (if any) and
// exposes the current login state, so every handler gets both for free.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	tmpl, ok := rn.pages[page]
	if !ok {
		rn.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	pd := pageData{
		Title:         title,
		Flash:         popFlash(w, r),
		CurrentUserID: userID,
		Data:          data,
	}

	// Headers must be set before the first body write.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := tmpl.ExecuteTemplate(w, "base", pd); err != nil {
		// Headers are already sent; all we can do is log.
		rn.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

// RenderNotFound writes the 404 page. The signature matches
// http.HandlerFunc so it doubles as the router's NotFound handler.
func (rn *Renderer) RenderNotFound(w http.ResponseWriter, r *http.Request) {
	rn.Render(w, r, http.StatusNotFound, "error", "Not Found", "The page you're looking for doesn't exist.")
}

// RenderServerError logs err and writes the 500 page. The error detail is
// never exposed to the client — it may contain SQL or file paths.
func (rn *Renderer) RenderServerError(w http.ResponseWriter, r *http.Request, err error) {
	rn.logger.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	rn.Render(w, r, http.StatusInternalServerError, "error", "Something went wrong", "An internal error occurred.")
}
