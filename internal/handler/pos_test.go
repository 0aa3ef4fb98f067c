package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/auth"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/handler"
	mw "github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/pos"
	"github.com/restro-pos/gateway/internal/session"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/restro-pos/gateway/internal/ws"
)

// --- Mock workflow collaborators ---

type mockOrderCreator struct {
	createFn func(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error)
}

func (m *mockOrderCreator) Create(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return json.RawMessage(`{"OrderID":42}`), nil
}

type mockItemCreator struct {
	createFn func(ctx context.Context, req upstream.CreateOrderItem) error
}

func (m *mockItemCreator) Create(ctx context.Context, req upstream.CreateOrderItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil
}

type mockTableGetter struct {
	getFn func(ctx context.Context, id int64) (*domain.Table, error)
}

func (m *mockTableGetter) Get(ctx context.Context, id int64) (*domain.Table, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &domain.Table{TableID: id, TableNumber: id, TableStatus: "free", RestaurantID: 1}, nil
}

type posFixture struct {
	workflow *pos.Workflow
	hub      *mockBroadcaster
	router   chi.Router
}

func newPOSFixture(orders *mockOrderCreator, items *mockItemCreator) *posFixture {
	workflow := pos.NewWorkflow(orders, items)
	hub := &mockBroadcaster{}
	h := handler.NewPOSHandler(workflow, &mockTableGetter{}, hub)

	ctrl := &mockSessionCtrl{
		state:   auth.StateAuthenticated,
		current: &session.Session{UserID: 7, UserName: "alice", UserRole: "waiter", RestaurantID: 1},
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Guard(ctrl))
		r.Route("/pos", h.RegisterRoutes)
	})
	return &posFixture{workflow: workflow, hub: hub, router: r}
}

func (f *posFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func TestBasketLifecycleOverHTTP(t *testing.T) {
	f := newPOSFixture(&mockOrderCreator{}, &mockItemCreator{})

	rec := f.do(t, http.MethodPost, "/pos/basket/items",
		`{"item":{"MenuItemID":1,"MenuItemName":"Tea","MenuItemPrice":2.50}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}

	// Same item again bumps the quantity.
	f.do(t, http.MethodPost, "/pos/basket/items",
		`{"item":{"MenuItemID":1,"MenuItemName":"Tea","MenuItemPrice":2.50}}`)

	rec = f.do(t, http.MethodGet, "/pos/basket", "")
	var snapshot struct {
		Lines []pos.Line `json:"lines"`
		Total string     `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snapshot.Lines) != 1 || snapshot.Lines[0].Quantity != 2 {
		t.Errorf("lines = %+v", snapshot.Lines)
	}
	if snapshot.Total != "5.00" {
		t.Errorf("total = %s, want 5.00", snapshot.Total)
	}

	rec = f.do(t, http.MethodPatch, "/pos/basket/items/1", `{"delta":-5}`)
	json.Unmarshal(rec.Body.Bytes(), &snapshot)
	if snapshot.Lines[0].Quantity != 1 {
		t.Errorf("quantity after floor = %d, want 1", snapshot.Lines[0].Quantity)
	}

	rec = f.do(t, http.MethodDelete, "/pos/basket/items/1", "")
	json.Unmarshal(rec.Body.Bytes(), &snapshot)
	if len(snapshot.Lines) != 0 {
		t.Errorf("lines after remove = %+v", snapshot.Lines)
	}
}

func TestSubmitRequiresTable(t *testing.T) {
	f := newPOSFixture(&mockOrderCreator{}, &mockItemCreator{})
	f.do(t, http.MethodPost, "/pos/basket/items", `{"item":{"MenuItemID":1,"MenuItemPrice":2.50}}`)

	rec := f.do(t, http.MethodPost, "/pos/submit", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(f.hub.events) != 0 {
		t.Error("failed guard must not broadcast")
	}
}

func TestSubmitSuccessBroadcastsAndClears(t *testing.T) {
	var created upstream.CreateOrder
	orders := &mockOrderCreator{
		createFn: func(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error) {
			created = req
			return json.RawMessage(`{"OrderID":42}`), nil
		},
	}
	f := newPOSFixture(orders, &mockItemCreator{})

	f.do(t, http.MethodPost, "/pos/table", `{"TableID":3}`)
	f.do(t, http.MethodPost, "/pos/basket/items", `{"item":{"MenuItemID":1,"MenuItemPrice":2.50}}`)

	rec := f.do(t, http.MethodPost, "/pos/submit", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	// Restaurant scope comes from the session, not the request.
	if created.RestaurantID != 1 {
		t.Errorf("order created for restaurant %d, want 1", created.RestaurantID)
	}

	if len(f.hub.events) != 1 || f.hub.events[0].Type != ws.EventOrderCreated {
		t.Fatalf("events = %+v", f.hub.events)
	}
	if f.hub.rooms[0] != 1 {
		t.Errorf("broadcast to room %d, want 1", f.hub.rooms[0])
	}

	if f.workflow.Basket().Len() != 0 || f.workflow.SelectedTable() != nil {
		t.Error("in-progress order not cleared after success")
	}
}

func TestSubmitPartialFailureKeepsBasket(t *testing.T) {
	items := &mockItemCreator{
		createFn: func(ctx context.Context, req upstream.CreateOrderItem) error {
			return errors.New("backend replied 500")
		},
	}
	f := newPOSFixture(&mockOrderCreator{}, items)

	f.do(t, http.MethodPost, "/pos/table", `{"TableID":3}`)
	f.do(t, http.MethodPost, "/pos/basket/items", `{"item":{"MenuItemID":1,"MenuItemPrice":2.50}}`)

	rec := f.do(t, http.MethodPost, "/pos/submit", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Error  string `json:"error"`
		Result struct {
			OrderID     int64 `json:"OrderID"`
			FailedLines []struct {
				MenuItemID int64 `json:"MenuItemID"`
			} `json:"failedLines"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.OrderID != 42 || len(resp.Result.FailedLines) != 1 {
		t.Errorf("result = %+v", resp.Result)
	}

	if f.workflow.Basket().Len() != 1 {
		t.Error("basket must survive a partial failure")
	}
	// The order exists upstream, so the feed still learns about it.
	if len(f.hub.events) != 1 {
		t.Errorf("events = %+v", f.hub.events)
	}
}

func TestPOSRejectsAnonymousTerminal(t *testing.T) {
	workflow := pos.NewWorkflow(&mockOrderCreator{}, &mockItemCreator{})
	h := handler.NewPOSHandler(workflow, &mockTableGetter{}, &mockBroadcaster{})

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Guard(&mockSessionCtrl{state: auth.StateAnonymous}))
		r.Route("/pos", h.RegisterRoutes)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pos/basket", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}
