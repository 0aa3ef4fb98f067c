package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/restro-pos/gateway/internal/auth"
	mw "github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/router"
	"github.com/restro-pos/gateway/internal/session"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/restro-pos/gateway/internal/ws"
)

// recordingBackend stands in for the remote REST API and remembers whether
// any request got through the gateway.
type recordingBackend struct {
	mu   sync.Mutex
	hits []string
}

func (b *recordingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits = append(b.hits, r.Method+" "+r.URL.Path)
	b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`[]`))
}

func (b *recordingBackend) hitCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.hits)
}

// newTerminal builds the full routing stack with a session already resolved
// for the given role.
func newTerminal(t *testing.T, role string, backend *recordingBackend) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	store.Set(context.Background(), session.NewOfflineToken(),
		&session.Session{UserID: 7, UserName: "terminal", UserRole: role, RestaurantID: 1})

	client := upstream.NewClient(srv.URL, store, time.Second)
	ctrl := auth.NewController(store, upstream.NewUserService(client), auth.Options{OfflineFallback: true})
	client.OnSessionExpired(ctrl.Invalidate)
	ctrl.Bootstrap(context.Background())
	if ctrl.State() != auth.StateAuthenticated {
		t.Fatalf("terminal did not authenticate as %s", role)
	}

	hub := ws.NewHub()
	go hub.Run()
	return router.New(ctrl, client, hub)
}

func TestWaiterCannotWriteTablesOrMenu(t *testing.T) {
	backend := &recordingBackend{}
	terminal := newTerminal(t, "waiter", backend)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/tables", `{"TableNumber":9,"TableCapacity":4}`},
		{http.MethodPatch, "/tables/3", `{"TableStatus":"free"}`},
		{http.MethodDelete, "/tables/3", ""},
		{http.MethodPost, "/menu-items", `{"MenuItemName":"Tea","MenuItemPrice":2.5}`},
		{http.MethodPatch, "/menu-items/1", `{"MenuItemPrice":3}`},
		{http.MethodDelete, "/menu-items/1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			terminal.ServeHTTP(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Errorf("status = %d, want 303", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != mw.LandingPath {
				t.Errorf("Location = %q, want %s", loc, mw.LandingPath)
			}
		})
	}
	if n := backend.hitCount(); n != 0 {
		t.Errorf("%d write requests reached the backend, want 0", n)
	}
}

func TestWaiterCanStillReadTablesAndMenu(t *testing.T) {
	backend := &recordingBackend{}
	terminal := newTerminal(t, "waiter", backend)

	for _, path := range []string{"/tables", "/menu-items", "/menu-items/category/1"} {
		rec := httptest.NewRecorder()
		terminal.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200: %s", path, rec.Code, rec.Body.String())
		}
	}
	if backend.hitCount() != 3 {
		t.Errorf("backend saw %d reads, want 3", backend.hitCount())
	}
}

func TestManagerCanWriteTables(t *testing.T) {
	backend := &recordingBackend{}
	terminal := newTerminal(t, "manager", backend)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tables", bytes.NewBufferString(`{"TableNumber":9,"TableCapacity":4}`))
	terminal.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if backend.hitCount() != 1 {
		t.Errorf("backend saw %d requests, want 1", backend.hitCount())
	}
}
