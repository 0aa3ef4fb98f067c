package pos_test

import (
	"testing"

	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/pos"
)

func menuItem(id int64, name string, price float64) domain.MenuItem {
	return domain.MenuItem{MenuItemID: id, MenuItemName: name, MenuItemPrice: price}
}

func TestAddDeduplicates(t *testing.T) {
	b := pos.NewBasket()
	tea := menuItem(1, "Tea", 2.50)

	b.Add(tea)
	b.Add(tea)
	b.Add(menuItem(2, "Coffee", 3.00))

	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("repeated add gave quantity %d, want 2", lines[0].Quantity)
	}
	if lines[1].Quantity != 1 {
		t.Errorf("single add gave quantity %d, want 1", lines[1].Quantity)
	}
}

func TestAdjustQuantityFloorsAtOne(t *testing.T) {
	b := pos.NewBasket()
	b.Add(menuItem(1, "Tea", 2.50))

	b.AdjustQuantity(1, 4)
	if q := b.Lines()[0].Quantity; q != 5 {
		t.Errorf("quantity = %d, want 5", q)
	}

	b.AdjustQuantity(1, -10)
	if q := b.Lines()[0].Quantity; q != 1 {
		t.Errorf("quantity after large decrement = %d, want floor of 1", q)
	}
	if b.Len() != 1 {
		t.Error("decrement must never remove the line")
	}

	// Unknown item is a no-op.
	b.AdjustQuantity(99, 3)
	if b.Len() != 1 {
		t.Error("adjusting an absent item changed the basket")
	}
}

func TestRemoveDropsWholeLine(t *testing.T) {
	b := pos.NewBasket()
	b.Add(menuItem(1, "Tea", 2.50))
	b.AdjustQuantity(1, 4)
	b.Add(menuItem(2, "Coffee", 3.00))

	b.Remove(1)
	lines := b.Lines()
	if len(lines) != 1 || lines[0].Item.MenuItemID != 2 {
		t.Errorf("after remove, lines = %+v", lines)
	}
}

func TestTotalIsExact(t *testing.T) {
	b := pos.NewBasket()
	b.Add(menuItem(1, "Tea", 3.99))
	b.AdjustQuantity(1, 2) // 3 x 3.99
	b.Add(menuItem(2, "Mint", 0.10))
	b.AdjustQuantity(2, 1) // 2 x 0.10

	// 11.97 + 0.20; float accumulation would drift here.
	if got := b.Total().StringFixed(2); got != "12.17" {
		t.Errorf("total = %s, want 12.17", got)
	}

	b.Add(menuItem(3, "Tap Water", 0))
	if got := b.Total().StringFixed(2); got != "12.17" {
		t.Errorf("zero-priced item changed total to %s", got)
	}

	b.Clear()
	if !b.Total().IsZero() {
		t.Errorf("cleared basket total = %s, want 0", b.Total())
	}
}
