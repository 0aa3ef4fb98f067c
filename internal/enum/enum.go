package enum

// ── Roles (closed set; anything else carries no permissions) ──

const (
	RoleManager = "manager"
	RoleWaiter  = "waiter"
	RoleChef    = "chef"
	RoleCashier = "cashier"
)

// ── Order status (forward-only progression) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusServed    = "served"
	OrderStatusPaid      = "paid"
)

const (
	TableStatusFree     = "free"
	TableStatusOccupied = "occupied"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// ValidRole reports whether s is one of the closed role set.
func ValidRole(s string) bool {
	switch s {
	case RoleManager, RoleWaiter, RoleChef, RoleCashier:
		return true
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusServed, OrderStatusPaid:
		return true
	}
	return false
}
