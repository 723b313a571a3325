package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/auth"
	"github.com/sakif/movie-ratings/internal/service"
)

// CatalogHandler serves the browse pages: home, user list, movie list,
// and the two detail views.
type CatalogHandler struct {
	catalog  *service.CatalogService
	renderer *Renderer
	logger   *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, renderer *Renderer, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleHome serves the landing page.
//
// HTTP: GET /
func (h *CatalogHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "home", "Movie Ratings", nil)
}

// HandleUserList serves the user index.
//
// HTTP: GET /users
func (h *CatalogHandler) HandleUserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.catalog.ListUsers(r.Context())
	if err != nil {
		h.renderer.RenderServerError(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "user_list", "Users", users)
}

// HandleUserDetail serves a user's page with their ratings.
//
// HTTP: GET /users/{userID}
func (h *CatalogHandler) HandleUserDetail(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	detail, err := h.catalog.GetUserDetail(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.renderer.RenderNotFound(w, r)
			return
		}
		h.renderer.RenderServerError(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "user_detail", detail.User.Email, detail)
}

// HandleMovieList serves the movie index.
//
// HTTP: GET /movies
func (h *CatalogHandler) HandleMovieList(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		h.renderer.RenderServerError(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "movie_list", "Movies", movies)
}

// HandleMovieDetail serves a movie's page: every submitted score, the
// average, and — for a logged-in viewer — their own rating prefilled in
// the rating form.
//
// HTTP: GET /movies/{movieID}
func (h *CatalogHandler) HandleMovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	viewerID, _ := auth.UserIDFromContext(r.Context())

	detail, err := h.catalog.GetMovieDetail(r.Context(), movieID, viewerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.renderer.RenderNotFound(w, r)
			return
		}
		h.renderer.RenderServerError(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "movie_detail", detail.Movie.Title, detail)
}
