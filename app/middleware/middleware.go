package middleware

import (
	"log"
	"net/http"
	"time"

	"inkwell/app/sessions"

	"github.com/gorilla/mux"
)

// AdminUserID is the single designated administrator identity. This is a
// one-admin model with no roles; a known limitation, not a bug.
const AdminUserID uint = 1

// Logger logs information about each request
func Logger(infoLog *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			infoLog.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(errorLog *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					errorLog.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Guard gates handlers on the identity resolved from the session.
type Guard struct {
	Sessions *sessions.Manager
}

// RequireAuth redirects anonymous requests to the login page.
func (g *Guard) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.Sessions.CurrentUser(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// AdminOnly permits only the designated administrator. Anonymous requests are
// redirected to login; any other authenticated identity gets 403 and the
// wrapped handler never runs.
func (g *Guard) AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := g.Sessions.CurrentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if user.ID != AdminUserID {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
