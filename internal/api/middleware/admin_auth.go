package middleware

import (
	"net/http"

	"github.com/m04kA/LCM-BookingService/internal/api/handlers"
	"github.com/m04kA/LCM-BookingService/internal/service/auth"
)

const msgAdminAuthRequired = "Anmeldung erforderlich"

// TokenVerifier проверяет токен администратора
type TokenVerifier interface {
	VerifyToken(token string) error
}

// AdminAuth middleware доступа к админке
// Токен читается из httpOnly cookie, выданного при логине
func AdminAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				handlers.RespondUnauthorized(w, msgAdminAuthRequired)
				return
			}

			if err := verifier.VerifyToken(cookie.Value); err != nil {
				handlers.RespondUnauthorized(w, msgAdminAuthRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
