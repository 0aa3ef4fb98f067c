package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/restro-pos/gateway/internal/auth"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/enum"
	"github.com/restro-pos/gateway/internal/handler"
	mw "github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/pos"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/restro-pos/gateway/internal/ws"
)

// dashboardStore bundles the backend reads the dashboard aggregates.
type dashboardStore struct {
	orders      *upstream.OrderService
	tables      *upstream.TableService
	menuItems   *upstream.MenuItemService
	restaurants *upstream.RestaurantService
}

func (s dashboardStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s dashboardStore) ListTables(ctx context.Context) ([]domain.Table, error) {
	return s.tables.List(ctx)
}

func (s dashboardStore) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menuItems.List(ctx)
}

func (s dashboardStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.List(ctx)
}

// New creates a Chi router with all terminal routes wired up. The session
// guard fronts everything except health, the auth endpoints, and the live
// feed, which validates the session itself. Role groups mirror the fixed
// permission grid.
func New(ctrl *auth.Controller, client *upstream.Client, hub *ws.Hub) chi.Router {
	restaurants := upstream.NewRestaurantService(client)
	tables := upstream.NewTableService(client)
	categories := upstream.NewCategoryService(client)
	menuItems := upstream.NewMenuItemService(client)
	orders := upstream.NewOrderService(client)
	orderItems := upstream.NewOrderItemService(client)
	users := upstream.NewUserService(client)
	workflow := pos.NewWorkflow(orders, orderItems)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(ctrl)
	authHandler.RegisterRoutes(r)

	// Live order feed (validates the session itself)
	r.Get("/ws/restaurants/{rid}/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, ctrl, w, r)
	})

	// Guarded routes
	r.Group(func(r chi.Router) {
		r.Use(mw.Guard(ctrl))

		dashboardHandler := handler.NewDashboardHandler(dashboardStore{
			orders:      orders,
			tables:      tables,
			menuItems:   menuItems,
			restaurants: restaurants,
		})
		r.Route("/dashboard", dashboardHandler.RegisterRoutes)

		orderHandler := handler.NewOrderHandler(orders, hub)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(enum.RoleManager, enum.RoleChef, enum.RoleCashier))
				orderHandler.RegisterLifecycleRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(enum.RoleManager))
				orderHandler.RegisterAdminRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleManager, enum.RoleChef))
			r.Route("/kitchen", orderHandler.RegisterKitchenRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleManager, enum.RoleWaiter))
			orderItemHandler := handler.NewOrderItemHandler(orderItems)
			r.Route("/order-items", orderItemHandler.RegisterRoutes)

			menuItemHandler := handler.NewMenuItemHandler(menuItems)
			r.Route("/menu-items", func(r chi.Router) {
				menuItemHandler.RegisterRoutes(r)
				r.Group(func(r chi.Router) {
					r.Use(mw.RequireRole(enum.RoleManager))
					menuItemHandler.RegisterWriteRoutes(r)
				})
			})

			posHandler := handler.NewPOSHandler(workflow, tables, hub)
			r.Route("/pos", posHandler.RegisterRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleManager, enum.RoleWaiter, enum.RoleCashier))
			tableHandler := handler.NewTableHandler(tables)
			r.Route("/tables", func(r chi.Router) {
				tableHandler.RegisterRoutes(r)
				r.Group(func(r chi.Router) {
					r.Use(mw.RequireRole(enum.RoleManager))
					tableHandler.RegisterWriteRoutes(r)
				})
			})
		})

		// Manager-only administration
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleManager))

			restaurantHandler := handler.NewRestaurantHandler(restaurants)
			r.Route("/restaurants", restaurantHandler.RegisterRoutes)

			userHandler := handler.NewUserHandler(users)
			r.Route("/users", userHandler.RegisterRoutes)

			categoryHandler := handler.NewCategoryHandler(categories)
			r.Route("/menu-categories", categoryHandler.RegisterRoutes)
		})
	})

	return r
}
