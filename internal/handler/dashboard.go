package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/enum"
	"github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/upstream"
)

// DashboardStore defines the backend reads the dashboard aggregates.
// Satisfied by the upstream services; narrow interface for testability.
type DashboardStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}

// DashboardHandler serves the landing view's aggregate snapshot.
type DashboardHandler struct {
	store DashboardStore
}

func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Summary)
}

// --- Response types ---

type dashboardResponse struct {
	Restaurant     *domain.Restaurant `json:"restaurant,omitempty"`
	OrdersByStatus map[string]int     `json:"ordersByStatus"`
	ActiveOrders   []domain.Order     `json:"activeOrders"`
	TablesTotal    int                `json:"tablesTotal"`
	TablesOccupied int                `json:"tablesOccupied"`
	MenuItemCount  int                `json:"menuItemCount"`
	Revenue        float64            `json:"revenue"`
	Degraded       []string           `json:"degraded,omitempty"`
}

// --- Handlers ---

// Summary fetches orders, tables, menu items, and restaurants concurrently
// and folds them into one snapshot. A single failed read degrades the
// snapshot instead of failing it, and the reply names what is missing.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	var (
		orders      []domain.Order
		tables      []domain.Table
		menuItems   []domain.MenuItem
		restaurants []domain.Restaurant
		errs        [4]error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		orders, errs[0] = h.store.ListOrders(ctx)
	}()
	go func() {
		defer wg.Done()
		tables, errs[1] = h.store.ListTables(ctx)
	}()
	go func() {
		defer wg.Done()
		menuItems, errs[2] = h.store.ListMenuItems(ctx)
	}()
	go func() {
		defer wg.Done()
		restaurants, errs[3] = h.store.ListRestaurants(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if errors.Is(err, upstream.ErrSessionExpired) {
			http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
			return
		}
	}

	resp := dashboardResponse{
		OrdersByStatus: map[string]int{},
		ActiveOrders:   []domain.Order{},
	}
	names := [4]string{"orders", "tables", "menu-items", "restaurants"}
	for i, err := range errs {
		if err != nil {
			resp.Degraded = append(resp.Degraded, names[i])
		}
	}

	for _, o := range orders {
		if sess.RestaurantID != 0 && o.RestaurantID != 0 && o.RestaurantID != sess.RestaurantID {
			continue
		}
		resp.OrdersByStatus[o.OrderStatus]++
		if o.OrderStatus == enum.OrderStatusPending || o.OrderStatus == enum.OrderStatusPreparing {
			resp.ActiveOrders = append(resp.ActiveOrders, o)
		}
		if o.OrderStatus == enum.OrderStatusPaid {
			resp.Revenue += o.TotalAmount
		}
	}
	for _, t := range tables {
		if sess.RestaurantID != 0 && t.RestaurantID != 0 && t.RestaurantID != sess.RestaurantID {
			continue
		}
		resp.TablesTotal++
		if t.TableStatus == enum.TableStatusOccupied {
			resp.TablesOccupied++
		}
	}
	resp.MenuItemCount = len(menuItems)
	for i := range restaurants {
		if restaurants[i].RestaurantID == sess.RestaurantID {
			resp.Restaurant = &restaurants[i]
			break
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
