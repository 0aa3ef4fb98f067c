package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/auth"
	"github.com/restro-pos/gateway/internal/handler"
	"github.com/restro-pos/gateway/internal/session"
)

// --- Mock SessionController ---

type mockSessionCtrl struct {
	loginFn func(ctx context.Context, username, password string) (*auth.LoginResult, error)
	logouts int
	state   auth.State
	current *session.Session
}

func (m *mockSessionCtrl) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, auth.ErrLoginFailed
}

func (m *mockSessionCtrl) Logout(ctx context.Context) { m.logouts++ }

func (m *mockSessionCtrl) State() auth.State { return m.state }

func (m *mockSessionCtrl) Current() *session.Session { return m.current }

func authRouter(ctrl *mockSessionCtrl) chi.Router {
	r := chi.NewRouter()
	handler.NewAuthHandler(ctrl).RegisterRoutes(r)
	return r
}

func TestLoginSuccess(t *testing.T) {
	ctrl := &mockSessionCtrl{
		loginFn: func(ctx context.Context, username, password string) (*auth.LoginResult, error) {
			return &auth.LoginResult{
				Session: &session.Session{UserID: 7, UserName: username, UserRole: "waiter", RestaurantID: 1},
			}, nil
		},
	}

	body := bytes.NewBufferString(`{"username":"alice","password":"secret"}`)
	rec := httptest.NewRecorder()
	authRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success    bool             `json:"success"`
		Message    string           `json:"message"`
		User       *session.Session `json:"user"`
		Navigation []struct {
			Path string `json:"path"`
		} `json:"navigation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Login Successful" {
		t.Errorf("success=%v message=%q", resp.Success, resp.Message)
	}
	if resp.User == nil || resp.User.UserRole != "waiter" {
		t.Errorf("user = %+v", resp.User)
	}
	if len(resp.Navigation) != 4 {
		t.Errorf("waiter navigation has %d entries, want 4", len(resp.Navigation))
	}
}

func TestLoginCarriesOfflineAdvisory(t *testing.T) {
	ctrl := &mockSessionCtrl{
		loginFn: func(ctx context.Context, username, password string) (*auth.LoginResult, error) {
			return &auth.LoginResult{
				Session:  &session.Session{UserID: 1, UserName: username, UserRole: "manager", RestaurantID: 1},
				Advisory: "Login Successful (Offline Mode)",
			}, nil
		},
	}

	body := bytes.NewBufferString(`{"username":"alice","password":"secret"}`)
	rec := httptest.NewRecorder()
	authRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", body))

	var resp struct {
		Message string `json:"message"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Login Successful (Offline Mode)" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestLoginValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing password", `{"username":"alice"}`},
		{"missing username", `{"password":"secret"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tc.body))
			authRouter(&mockSessionCtrl{}).ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestLoginRefusedWhenFallbackDisabled(t *testing.T) {
	ctrl := &mockSessionCtrl{
		loginFn: func(ctx context.Context, username, password string) (*auth.LoginResult, error) {
			return nil, auth.ErrLoginFailed
		},
	}

	body := bytes.NewBufferString(`{"username":"alice","password":"bad"}`)
	rec := httptest.NewRecorder()
	authRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	ctrl := &mockSessionCtrl{}
	rec := httptest.NewRecorder()
	authRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ctrl.logouts != 1 {
		t.Errorf("logout called %d times, want 1", ctrl.logouts)
	}
}

func TestSessionEndpointPerState(t *testing.T) {
	cases := []struct {
		name     string
		ctrl     *mockSessionCtrl
		want     string
		wantUser bool
	}{
		{"resolving", &mockSessionCtrl{state: auth.StateResolving}, "resolving", false},
		{"anonymous", &mockSessionCtrl{state: auth.StateAnonymous}, "anonymous", false},
		{
			"authenticated",
			&mockSessionCtrl{
				state:   auth.StateAuthenticated,
				current: &session.Session{UserID: 7, UserName: "alice", UserRole: "manager", RestaurantID: 1},
			},
			"authenticated",
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			authRouter(tc.ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

			var resp struct {
				State string           `json:"state"`
				User  *session.Session `json:"user"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.State != tc.want {
				t.Errorf("state = %q, want %q", resp.State, tc.want)
			}
			if (resp.User != nil) != tc.wantUser {
				t.Errorf("user present = %v, want %v", resp.User != nil, tc.wantUser)
			}
		})
	}
}
