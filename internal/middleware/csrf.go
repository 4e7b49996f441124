// AngelaMos | 2026
// csrf.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/carterperez-dev/ntandostore/internal/admin"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

const csrfHeader = "X-CSRF-Token"

// CSRFVerifier guards state-mutating routes. The supplied token must match
// the one bound to the caller's session (authenticated or anonymous);
// anything missing or mismatched is rejected. The check fails closed.
//
// The token is read from the X-CSRF-Token header, falling back to a
// csrf_token form field for urlencoded posts. Multipart clients must use
// the header: the body is left unparsed here so upload handlers can apply
// their own size ceiling.
func CSRFVerifier(
	store admin.SessionStore,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				core.JSONError(w, core.CSRFError())
				return
			}

			session, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				core.JSONError(w, core.CSRFError())
				return
			}

			supplied := r.Header.Get(csrfHeader)
			if supplied == "" && !isMultipart(r) {
				supplied = r.PostFormValue("csrf_token")
			}

			if supplied == "" ||
				!core.CompareTokens(session.CSRFToken, supplied) {
				core.JSONError(w, core.CSRFError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(
		r.Header.Get("Content-Type"),
		"multipart/form-data",
	)
}
