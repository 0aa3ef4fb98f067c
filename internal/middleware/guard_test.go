package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/restro-pos/gateway/internal/auth"
	mw "github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/session"
)

// --- Mock session controller ---

type mockCtrl struct {
	state   auth.State
	current *session.Session
}

func (m *mockCtrl) State() auth.State         { return m.state }
func (m *mockCtrl) Current() *session.Session { return m.current }

func guarded(ctrl *mockCtrl, next http.HandlerFunc) http.Handler {
	return mw.Guard(ctrl)(next)
}

func TestGuardResolvingHoldsWithoutRedirect(t *testing.T) {
	ctrl := &mockCtrl{state: auth.StateResolving}
	rec := httptest.NewRecorder()
	guarded(ctrl, func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler ran while resolving")
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Error("resolving reply must be retryable")
	}
	if rec.Header().Get("Location") != "" {
		t.Error("resolving must never redirect")
	}
}

func TestGuardAnonymousRedirectsToLogin(t *testing.T) {
	ctrl := &mockCtrl{state: auth.StateAnonymous}
	rec := httptest.NewRecorder()
	guarded(ctrl, func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler ran for anonymous request")
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != mw.LoginPath {
		t.Errorf("Location = %q, want %s", loc, mw.LoginPath)
	}
}

func TestGuardAuthenticatedAttachesSession(t *testing.T) {
	sess := &session.Session{UserID: 7, UserName: "alice", UserRole: "waiter", RestaurantID: 1}
	ctrl := &mockCtrl{state: auth.StateAuthenticated, current: sess}

	var got *session.Session
	rec := httptest.NewRecorder()
	guarded(ctrl, func(w http.ResponseWriter, r *http.Request) {
		got = mw.SessionFromContext(r.Context())
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.UserID != 7 {
		t.Errorf("session in context = %+v", got)
	}
}

func TestRequireRoleRedirectsUnderPrivileged(t *testing.T) {
	sess := &session.Session{UserID: 7, UserRole: "waiter"}
	ctrl := &mockCtrl{state: auth.StateAuthenticated, current: sess}

	handler := mw.Guard(ctrl)(mw.RequireRole("manager")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("manager-only handler ran for a waiter")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != mw.LandingPath {
		t.Errorf("Location = %q, want %s", loc, mw.LandingPath)
	}
}

func TestRequireRolePassesMatchingRole(t *testing.T) {
	sess := &session.Session{UserID: 7, UserRole: "chef"}
	ctrl := &mockCtrl{state: auth.StateAuthenticated, current: sess}

	var ran bool
	handler := mw.Guard(ctrl)(mw.RequireRole("manager", "chef")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kitchen/orders", nil))

	if !ran {
		t.Error("matching role was not let through")
	}
}
