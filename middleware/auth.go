package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"go-storefront/services"
	"go-storefront/utils"
)

// Key type for context
type contextKey string

const SessionContextKey = contextKey("session")

// SessionFromContext returns the resolved session, if the request carried a
// live token.
func SessionFromContext(ctx context.Context) (*services.Session, bool) {
	sess, ok := ctx.Value(SessionContextKey).(*services.Session)
	return sess, ok
}

// Auth resolves a Bearer token into a session and attaches it to the request
// context. Requests without a token, or with an expired or logged-out one,
// pass through anonymous; the route guard decides whether that matters.
func Auth(sessions *services.SessionService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := utils.ParseJWT(token); err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// A valid token is only as good as the session behind it; logout
			// invalidates the session even while the JWT is unexpired.
			sess, ok := sessions.Current(token)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, &sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
