// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/carterperez-dev/ntandostore/internal/admin"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

const AuthContextKey contextKey = "auth_context"

// AuthContext is the verified principal for the request. Handlers receive
// it through the context, produced exactly once by the authenticator; they
// never re-read session state themselves.
type AuthContext struct {
	SessionToken string
	Username     string
	CSRFToken    string
}

// SessionAuthenticator rejects requests that do not carry an authenticated
// admin session. The anonymous sessions issued for public-form CSRF do not
// pass.
func SessionAuthenticator(
	store admin.SessionStore,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				core.JSONError(w, core.UnauthorizedError("authentication required"))
				return
			}

			session, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, core.ErrSessionExpired) {
					core.JSONError(w, core.SessionExpiredError())
					return
				}
				core.InternalServerError(w, err)
				return
			}

			if !session.Authenticated {
				core.JSONError(w, core.UnauthorizedError("authentication required"))
				return
			}

			ctx := context.WithValue(r.Context(), AuthContextKey, &AuthContext{
				SessionToken: session.Token,
				Username:     session.Username,
				CSRFToken:    session.CSRFToken,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAuthContext(ctx context.Context) *AuthContext {
	if auth, ok := ctx.Value(AuthContextKey).(*AuthContext); ok {
		return auth
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetAuthContext(ctx) != nil
}
