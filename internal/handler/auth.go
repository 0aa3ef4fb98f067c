package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/auth"
	"github.com/restro-pos/gateway/internal/authz"
	"github.com/restro-pos/gateway/internal/session"
)

// SessionController is the slice of the session controller the auth
// endpoints need. Satisfied by *auth.Controller; narrow interface for
// testability.
type SessionController interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context)
	State() auth.State
	Current() *session.Session
}

// AuthHandler handles login, logout, and session introspection.
type AuthHandler struct {
	ctrl SessionController
}

func NewAuthHandler(ctrl SessionController) *AuthHandler {
	return &AuthHandler{ctrl: ctrl}
}

// RegisterRoutes registers the auth endpoints. These are public: the session
// endpoint must answer in every lifecycle state, and logout is idempotent.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)
}

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	User        *session.Session    `json:"user"`
	Permissions authz.PermissionSet `json:"permissions"`
	Navigation  []authz.NavItem     `json:"navigation"`
}

type sessionResponse struct {
	State       string               `json:"state"`
	User        *session.Session     `json:"user,omitempty"`
	Permissions *authz.PermissionSet `json:"permissions,omitempty"`
	Navigation  []authz.NavItem      `json:"navigation,omitempty"`
}

// --- Handlers ---

// Login authenticates the operator. A backend that is down, broken, or
// rejecting still yields success here when offline fallback is enabled; the
// message then carries the offline-mode advisory.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	result, err := h.ctrl.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrLoginFailed) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login could not be completed"})
		return
	}

	message := result.Advisory
	if message == "" {
		message = "Login Successful"
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Success:     true,
		Message:     message,
		User:        result.Session,
		Permissions: authz.PermissionsFor(result.Session.UserRole),
		Navigation:  authz.NavigationFor(result.Session.UserRole),
	})
}

// Logout ends the session. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session reports the current lifecycle state. While the startup check is
// still resolving the reply says so and carries no user.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	state := h.ctrl.State()
	resp := sessionResponse{State: state.String()}

	if state == auth.StateAuthenticated {
		if sess := h.ctrl.Current(); sess != nil {
			perms := authz.PermissionsFor(sess.UserRole)
			resp.User = sess
			resp.Permissions = &perms
			resp.Navigation = authz.NavigationFor(sess.UserRole)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
