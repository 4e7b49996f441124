// AngelaMos | 2026
// handler.go

package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/ntandostore/internal/config"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	cfg       config.AuthConfig
}

func NewHandler(service *Service, cfg config.AuthConfig) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		cfg:       cfg,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, loginLimiter func(http.Handler) http.Handler,
) {
	r.Get("/csrf", h.IssueCSRF)

	r.Group(func(r chi.Router) {
		r.Use(loginLimiter)
		r.Post("/admin/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/admin/logout", h.Logout)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	session, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		var invalidErr *InvalidCredentialsError
		switch {
		case errors.Is(err, core.ErrLocked):
			core.JSONError(w, core.LockedError(
				"account is temporarily locked, try again later",
			))
		case errors.As(err, &invalidErr):
			core.JSONError(w, core.UnauthorizedError(fmt.Sprintf(
				"invalid credentials, %d attempts remaining",
				invalidErr.RemainingAttempts,
			)))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	h.setSessionCookie(w, session.Token)

	core.OK(w, LoginResponse{
		Username:  session.Username,
		CSRFToken: session.CSRFToken,
		ExpiresAt: session.CreatedAt.Add(h.cfg.SessionTTL),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.SessionCookie); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			core.InternalServerError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	core.NoContent(w)
}

// IssueCSRF hands public visitors an anonymous session so order, contact,
// and newsletter forms can carry a CSRF token.
func (h *Handler) IssueCSRF(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.SessionCookie); err == nil {
		// Token issuance is idempotent per session.
		if session, getErr := h.service.sessions.Get(r.Context(), cookie.Value); getErr == nil {
			core.OK(w, CSRFResponse{CSRFToken: session.CSRFToken})
			return
		}
	}

	session, err := h.service.IssueAnonymousSession(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	core.OK(w, CSRFResponse{CSRFToken: session.CSRFToken})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
