package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/auth"
	"github.com/sakif/movie-ratings/internal/service"
)

// AccountHandler serves registration, login, and logout.
type AccountHandler struct {
	accounts *service.AccountService
	tokens   *auth.TokenService
	renderer *Renderer
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(
	accounts *service.AccountService,
	tokens *auth.TokenService,
	renderer *Renderer,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleRegisterForm serves the registration page.
//
// HTTP: GET /register
func (h *AccountHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register_form", "Register", nil)
}

// HandleRegister processes a registration submission.
//
// HTTP: POST /register (form fields: email, password)
//
// Success redirects home with a flash; a taken email or a validation
// failure redirects back to the form with the reason in the flash.
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "Invalid form submission.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := h.accounts.Register(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrConflict):
			setFlash(w, "An account with that email already exists. Try logging in.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		case errors.Is(err, apperror.ErrValidation):
			setFlash(w, flashMessage(err))
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		default:
			h.renderer.RenderServerError(w, r, err)
		}
		return
	}

	setFlash(w, "Account created. Please log in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginForm serves the login page.
//
// HTTP: GET /login
func (h *AccountHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login_form", "Log In", nil)
}

// HandleLogin processes a login submission.
//
// HTTP: POST /login (form fields: email, password)
//
//   - unknown account → redirect to /register ("please create an account")
//   - wrong password  → redirect back to /login for a retry
//   - success         → set the session cookie and land on the user's page
//
// On failure no session state is touched — the visitor stays anonymous.
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "Invalid form submission.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrNoSuchAccount):
			setFlash(w, "Please create an account.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		case errors.Is(err, apperror.ErrInvalidCredentials):
			setFlash(w, "Sorry, incorrect password!")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			h.renderer.RenderServerError(w, r, err)
		}
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.renderer.RenderServerError(w, r, err)
		return
	}
	auth.SetSessionCookie(w, token, h.tokens.TTL())

	setFlash(w, "Successfully logged in.")
	http.Redirect(w, r, "/users/"+user.ID, http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: GET /logout
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	setFlash(w, "Successfully logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// flashMessage extracts the human-readable message from an AppError, with
// a generic fallback for anything else.
func flashMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong."
}
