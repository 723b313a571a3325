package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/auth"
	"github.com/sakif/movie-ratings/internal/model"
	"github.com/sakif/movie-ratings/internal/service"
)

// RatingHandler handles rating submissions.
type RatingHandler struct {
	ratings  *service.RatingService
	renderer *Renderer
	logger   *slog.Logger
}

// NewRatingHandler creates a RatingHandler.
func NewRatingHandler(ratings *service.RatingService, renderer *Renderer, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		ratings:  ratings,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleSubmit records the current user's score for a movie.
//
// HTTP: POST /add-rating (form fields: movie_id, score)
//
// Anonymous submissions redirect to /login; everything else lands back on
// the movie page with the outcome in the flash.
func (h *RatingHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "Invalid form submission.")
		http.Redirect(w, r, "/movies", http.StatusSeeOther)
		return
	}

	movieID := r.PostFormValue("movie_id")
	score, err := strconv.Atoi(r.PostFormValue("score"))
	if err != nil {
		setFlash(w, "Score must be a number.")
		http.Redirect(w, r, movieURL(movieID), http.StatusSeeOther)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	_, outcome, err := h.ratings.Upsert(r.Context(), userID, movieID, score)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrUnauthenticated):
			setFlash(w, "Please log in to rate movies.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, apperror.ErrNotFound):
			h.renderer.RenderNotFound(w, r)
		case errors.Is(err, apperror.ErrValidation):
			setFlash(w, flashMessage(err))
			http.Redirect(w, r, movieURL(movieID), http.StatusSeeOther)
		default:
			h.renderer.RenderServerError(w, r, err)
		}
		return
	}

	if outcome == model.RatingCreated {
		setFlash(w, "Rating added.")
	} else {
		setFlash(w, "Rating updated.")
	}
	http.Redirect(w, r, movieURL(movieID), http.StatusSeeOther)
}

func movieURL(movieID string) string {
	if movieID == "" {
		return "/movies"
	}
	return "/movies/" + movieID
}
