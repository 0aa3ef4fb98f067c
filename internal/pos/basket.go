// Package pos implements the order-taking workflow: the basket an operator
// builds while taking an order, and the submission sequence that turns it
// into an order plus line items on the backend.
package pos

import (
	"sync"

	"github.com/restro-pos/gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// Line is one basket entry: a menu item and how many of it.
type Line struct {
	Item     domain.MenuItem `json:"item"`
	Quantity int64           `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Item.MenuItemPrice).Mul(decimal.NewFromInt(l.Quantity))
}

// Basket accumulates menu selections for one in-progress order. A menu item
// appears at most once; repeated adds increment the quantity.
type Basket struct {
	mu    sync.Mutex
	lines []Line
}

func NewBasket() *Basket {
	return &Basket{}
}

// Add appends item with quantity 1, or bumps the existing line.
func (b *Basket) Add(item domain.MenuItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.lines {
		if b.lines[i].Item.MenuItemID == item.MenuItemID {
			b.lines[i].Quantity++
			return
		}
	}
	b.lines = append(b.lines, Line{Item: item, Quantity: 1})
}

// Remove drops the line entirely, whatever its quantity.
func (b *Basket) Remove(menuItemID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.lines {
		if b.lines[i].Item.MenuItemID == menuItemID {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			return
		}
	}
}

// AdjustQuantity applies delta to a line's quantity, flooring at 1. The line
// is never removed here; Remove is the only way out of the basket.
func (b *Basket) AdjustQuantity(menuItemID, delta int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.lines {
		if b.lines[i].Item.MenuItemID == menuItemID {
			next := b.lines[i].Quantity + delta
			if next < 1 {
				next = 1
			}
			b.lines[i].Quantity = next
			return
		}
	}
}

// Lines returns a snapshot copy.
func (b *Basket) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *Basket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Total recomputes the running total from scratch on every call.
func (b *Basket) Total() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := decimal.Zero
	for _, line := range b.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clear empties the basket.
func (b *Basket) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}
