package pos_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/enum"
	"github.com/restro-pos/gateway/internal/pos"
	"github.com/restro-pos/gateway/internal/upstream"
)

// --- Mock OrderCreator ---

type mockOrderCreator struct {
	mu       sync.Mutex
	calls    []upstream.CreateOrder
	createFn func(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error)
}

func (m *mockOrderCreator) Create(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return json.RawMessage(`{"OrderID":10}`), nil
}

// --- Mock OrderItemCreator ---

type mockItemCreator struct {
	mu       sync.Mutex
	calls    []upstream.CreateOrderItem
	createFn func(ctx context.Context, req upstream.CreateOrderItem) error
}

func (m *mockItemCreator) Create(ctx context.Context, req upstream.CreateOrderItem) error {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil
}

func newWorkflow(orders *mockOrderCreator, items *mockItemCreator) *pos.Workflow {
	w := pos.NewWorkflow(orders, items)
	w.SelectTable(domain.Table{TableID: 3, TableNumber: 3, RestaurantID: 1})
	w.Basket().Add(menuItem(1, "Tea", 2.50))
	w.Basket().Add(menuItem(2, "Coffee", 3.00))
	w.Basket().AdjustQuantity(2, 1)
	return w
}

func TestSubmitGuardsMakeNoNetworkCalls(t *testing.T) {
	orders := &mockOrderCreator{}
	items := &mockItemCreator{}

	w := pos.NewWorkflow(orders, items)
	w.Basket().Add(menuItem(1, "Tea", 2.50))
	if _, err := w.Submit(context.Background(), 1); !errors.Is(err, pos.ErrNoTableSelected) {
		t.Errorf("submit without table = %v, want ErrNoTableSelected", err)
	}

	w2 := pos.NewWorkflow(orders, items)
	w2.SelectTable(domain.Table{TableID: 3})
	if _, err := w2.Submit(context.Background(), 1); !errors.Is(err, pos.ErrEmptyBasket) {
		t.Errorf("submit with empty basket = %v, want ErrEmptyBasket", err)
	}

	if len(orders.calls) != 0 || len(items.calls) != 0 {
		t.Error("guard failures must not reach the backend")
	}
}

func TestSubmitSuccess(t *testing.T) {
	orders := &mockOrderCreator{}
	items := &mockItemCreator{}
	w := newWorkflow(orders, items)

	result, err := w.Submit(context.Background(), 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.OrderID != 10 {
		t.Errorf("OrderID = %d, want 10", result.OrderID)
	}
	if got := result.Total.StringFixed(2); got != "8.50" {
		t.Errorf("total = %s, want 8.50", got)
	}

	if len(orders.calls) != 1 {
		t.Fatalf("order created %d times, want 1", len(orders.calls))
	}
	created := orders.calls[0]
	if created.TableID != 3 || created.RestaurantID != 1 {
		t.Errorf("order request = %+v", created)
	}
	if created.OrderStatus != enum.OrderStatusPending {
		t.Errorf("provisional status = %q, want pending", created.OrderStatus)
	}

	if len(items.calls) != 2 {
		t.Fatalf("created %d line items, want 2", len(items.calls))
	}
	for _, call := range items.calls {
		if call.OrderID != 10 {
			t.Errorf("line item carried order %d, want 10", call.OrderID)
		}
	}

	// Success clears the in-progress order.
	if w.Basket().Len() != 0 {
		t.Error("basket not cleared after success")
	}
	if w.SelectedTable() != nil {
		t.Error("table selection not cleared after success")
	}
}

func TestSubmitAcceptsCreationReplyShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
	}{
		{"flat OrderID", `{"OrderID":5}`, 5},
		{"lower id", `{"id":6}`, 6},
		{"bare number", `17`, 17},
		{"nested data", `{"error":false,"data":{"OrderID":9}}`, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &mockOrderCreator{
				createFn: func(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error) {
					return json.RawMessage(tc.raw), nil
				},
			}
			w := newWorkflow(orders, &mockItemCreator{})
			result, err := w.Submit(context.Background(), 1)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if result.OrderID != tc.want {
				t.Errorf("OrderID = %d, want %d", result.OrderID, tc.want)
			}
		})
	}
}

func TestSubmitWithoutCreatedID(t *testing.T) {
	orders := &mockOrderCreator{
		createFn: func(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error) {
			return json.RawMessage(`{"message":"created"}`), nil
		},
	}
	items := &mockItemCreator{}
	w := newWorkflow(orders, items)

	if _, err := w.Submit(context.Background(), 1); !errors.Is(err, pos.ErrNoCreatedID) {
		t.Errorf("submit = %v, want ErrNoCreatedID", err)
	}
	if len(items.calls) != 0 {
		t.Error("no line items may be created without an order identifier")
	}
	if w.Basket().Len() == 0 {
		t.Error("basket must survive a failed submission")
	}
}

func TestSubmitPartialLineFailure(t *testing.T) {
	orders := &mockOrderCreator{}
	items := &mockItemCreator{
		createFn: func(ctx context.Context, req upstream.CreateOrderItem) error {
			if req.MenuItemID == 2 {
				return errors.New("backend replied 500")
			}
			return nil
		},
	}
	w := newWorkflow(orders, items)

	result, err := w.Submit(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for partial failure")
	}
	if result == nil {
		t.Fatal("partial failure must still report the created order")
	}
	if result.OrderID != 10 {
		t.Errorf("OrderID = %d, want 10", result.OrderID)
	}
	if len(result.FailedLines) != 1 || result.FailedLines[0].MenuItemID != 2 {
		t.Errorf("FailedLines = %+v", result.FailedLines)
	}

	// No rollback, no cleanup: the operator decides what to do next.
	if w.Basket().Len() != 2 {
		t.Error("basket must stay intact after partial failure")
	}
	if w.SelectedTable() == nil {
		t.Error("table selection must stay intact after partial failure")
	}
}

func TestSubmitPropagatesServerReportedFailure(t *testing.T) {
	orders := &mockOrderCreator{
		createFn: func(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error) {
			return json.RawMessage(`{"error":true,"message":"table not found"}`), nil
		},
	}
	w := newWorkflow(orders, &mockItemCreator{})

	_, err := w.Submit(context.Background(), 1)
	if !errors.Is(err, upstream.ErrServerReported) {
		t.Errorf("submit = %v, want wrapped ErrServerReported", err)
	}
}
