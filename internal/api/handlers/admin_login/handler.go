package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/LCM-BookingService/internal/api/handlers"
	"github.com/m04kA/LCM-BookingService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "Ungültige Anfrage"
	msgInvalidCredentials = "Falsches Passwort"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Password string `json:"password"`
}

type Handler struct {
	authService  AuthService
	cookieSecure bool
	logger       Logger
}

func NewHandler(authService AuthService, cookieSecure bool, logger Logger) *Handler {
	return &Handler{
		authService:  authService,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// Handle POST /api/v1/admin/login
// Токен выдается в httpOnly cookie, тело ответа токен не содержит
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, ttl, err := h.authService.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/login - Invalid credentials")
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /admin/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("POST /admin/login - Admin logged in")
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
