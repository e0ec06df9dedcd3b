package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/models"
)

// LoginPath is where anonymous visitors of gated routes are sent.
const LoginPath = "/login"

// RequireRole gates a subrouter on a required role. Anonymous visitors are
// redirected to the login page; authenticated visitors holding a different
// role are redirected to their own role's home rather than the gated area.
func RequireRole(role models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if sess.Role != role {
				http.Redirect(w, r, homeFor(sess.Role), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth gates a subrouter on any authenticated principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func homeFor(role models.Role) string {
	if role == models.RoleAdmin {
		return "/admin"
	}
	return "/"
}
