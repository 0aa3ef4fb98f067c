package pos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/enum"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/shopspring/decimal"
)

// Errors returned by the workflow's client-side guard. Neither causes any
// network traffic.
var (
	ErrNoTableSelected = errors.New("select a table first")
	ErrEmptyBasket     = errors.New("basket is empty")
	ErrNoCreatedID     = errors.New("order created but no identifier returned")
)

// OrderCreator creates the order record. Satisfied by *upstream.OrderService.
type OrderCreator interface {
	Create(ctx context.Context, req upstream.CreateOrder) (json.RawMessage, error)
}

// OrderItemCreator creates one line item. Satisfied by
// *upstream.OrderItemService.
type OrderItemCreator interface {
	Create(ctx context.Context, req upstream.CreateOrderItem) error
}

// FailedLine reports one line-item creation that did not complete.
type FailedLine struct {
	MenuItemID   int64  `json:"MenuItemID"`
	MenuItemName string `json:"MenuItemName"`
	Reason       string `json:"reason"`
}

// SubmitResult reports a submission. FailedLines is non-empty on partial
// failure: the order record exists upstream with only the lines that made it.
type SubmitResult struct {
	OrderID     int64           `json:"OrderID"`
	Total       decimal.Decimal `json:"total"`
	FailedLines []FailedLine    `json:"failedLines,omitempty"`
}

// Workflow owns one terminal's in-progress order: the basket and the
// selected table. Nothing else mutates either.
type Workflow struct {
	orders OrderCreator
	items  OrderItemCreator

	mu     sync.Mutex
	basket *Basket
	table  *domain.Table
}

func NewWorkflow(orders OrderCreator, items OrderItemCreator) *Workflow {
	return &Workflow{
		orders: orders,
		items:  items,
		basket: NewBasket(),
	}
}

func (w *Workflow) Basket() *Basket {
	return w.basket
}

// SelectTable sets the table the next submission is for.
func (w *Workflow) SelectTable(t domain.Table) {
	w.mu.Lock()
	defer w.mu.Unlock()
	table := t
	w.table = &table
}

// SelectedTable returns a copy of the current selection, or nil.
func (w *Workflow) SelectedTable() *domain.Table {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.table == nil {
		return nil
	}
	t := *w.table
	return &t
}

// Reset clears both basket and table selection (the "new order" action).
func (w *Workflow) Reset() {
	w.mu.Lock()
	w.table = nil
	w.mu.Unlock()
	w.basket.Clear()
}

// Submit runs the four-step submission sequence: guard, create the order
// with a provisional pending status and the computed total, extract the new
// order's identifier, then create every line item concurrently and wait for
// all of them.
//
// On success the basket and table selection are cleared. On any failure both
// are left intact so the operator can retry. There is no rollback: a partial
// line-item failure leaves the order upstream with the lines that made it,
// reported in the result.
func (w *Workflow) Submit(ctx context.Context, restaurantID int64) (*SubmitResult, error) {
	w.mu.Lock()
	table := w.table
	w.mu.Unlock()

	if table == nil {
		return nil, ErrNoTableSelected
	}
	lines := w.basket.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyBasket
	}

	total := w.basket.Total()
	raw, err := w.orders.Create(ctx, upstream.CreateOrder{
		TableID:      table.TableID,
		RestaurantID: restaurantID,
		OrderStatus:  enum.OrderStatusPending,
		TotalAmount:  total.InexactFloat64(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if _, err := upstream.Unwrap(raw); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderID, found := upstream.ExtractCreatedID(raw)
	if !found {
		return nil, fmt.Errorf("%w: reply was %s", ErrNoCreatedID, raw)
	}

	// Fan out line-item creation; lower latency is worth the partial-
	// completion risk, which the result reports.
	itemErrs := make([]error, len(lines))
	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line Line) {
			defer wg.Done()
			itemErrs[i] = w.items.Create(ctx, upstream.CreateOrderItem{
				OrderID:    orderID,
				MenuItemID: line.Item.MenuItemID,
				Quantity:   line.Quantity,
			})
		}(i, line)
	}
	wg.Wait()

	var failed []FailedLine
	for i, itemErr := range itemErrs {
		if itemErr != nil {
			failed = append(failed, FailedLine{
				MenuItemID:   lines[i].Item.MenuItemID,
				MenuItemName: lines[i].Item.MenuItemName,
				Reason:       itemErr.Error(),
			})
		}
	}
	if len(failed) > 0 {
		return &SubmitResult{OrderID: orderID, Total: total, FailedLines: failed},
			fmt.Errorf("order %d: %d of %d items failed", orderID, len(failed), len(lines))
	}

	w.basket.Clear()
	w.mu.Lock()
	w.table = nil
	w.mu.Unlock()

	return &SubmitResult{OrderID: orderID, Total: total}, nil
}
