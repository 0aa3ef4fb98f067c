package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/restro-pos/gateway/internal/auth"
	"github.com/restro-pos/gateway/internal/session"
)

const (
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
	// LandingPath is where authenticated but under-privileged requests are
	// sent.
	LandingPath = "/dashboard"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionState is what the guard needs from the session controller.
type SessionState interface {
	State() auth.State
	Current() *session.Session
}

// Guard blocks protected routes until session state resolves. While the
// controller is still resolving it answers with a retryable placeholder and
// performs no redirect; once resolved, anonymous requests are redirected to
// the login view. Each request is evaluated exactly once against the
// resolved state, so a redirect fires at most once per request.
func Guard(ctrl SessionState) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch ctrl.State() {
			case auth.StateResolving:
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "resolving"})
				return
			case auth.StateAnonymous:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			sess := ctrl.Current()
			if sess == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole further restricts a guarded route to the given roles. Requests
// from other roles are redirected to the default landing view, not refused,
// matching how the dashboard treats under-privileged navigation.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			for _, role := range roles {
				if sess.UserRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Redirect(w, r, LandingPath, http.StatusSeeOther)
		})
	}
}

// SessionFromContext returns the session the guard attached, or nil.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
