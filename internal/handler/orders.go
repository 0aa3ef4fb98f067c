package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/enum"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/restro-pos/gateway/internal/ws"
	"github.com/shopspring/decimal"
)

// OrderStore defines the backend operations order handlers proxy.
// Satisfied by *upstream.OrderService; narrow interface for testability.
type OrderStore interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	ListByTable(ctx context.Context, tableID int64) ([]domain.Order, error)
	Update(ctx context.Context, id int64, req upstream.UpdateOrder) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// Broadcaster pushes order events to connected dashboard feeds.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastToRestaurant(restaurantID int64, event ws.Event)
}

// OrderHandler proxies order reads and lifecycle changes to the backend and
// broadcasts every status change to the restaurant's live feed.
type OrderHandler struct {
	store OrderStore
	hub   Broadcaster
}

func NewOrderHandler(store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{store: store, hub: hub}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/table/{tid}", h.ListByTable)
	r.Get("/{id}", h.Get)
}

// RegisterLifecycleRoutes registers the status and payment endpoints. Kept
// separate so the router can restrict them to the roles that hold update
// permission.
func (h *OrderHandler) RegisterLifecycleRoutes(r chi.Router) {
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Post("/{id}/payment", h.Pay)
}

// RegisterAdminRoutes registers order rewrite and deletion, which only the
// manager role holds.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// RegisterKitchenRoutes registers the kitchen queue view.
func (h *OrderHandler) RegisterKitchenRoutes(r chi.Router) {
	r.Get("/orders", h.Kitchen)
}

// --- Request / Response types ---

type updateStatusRequest struct {
	Status string `json:"status"`
}

type paymentRequest struct {
	Method   string  `json:"method"`
	Received float64 `json:"received"`
}

type paymentResponse struct {
	Success bool    `json:"success"`
	OrderID int64   `json:"OrderID"`
	Total   float64 `json:"total"`
	Change  float64 `json:"change"`
}

// --- Handlers ---

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListByTable(w http.ResponseWriter, r *http.Request) {
	tid, err := parseID(r, "tid")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	orders, err := h.store.ListByTable(r.Context(), tid)
	if err != nil {
		writeUpstreamError(w, r, "list orders by table", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	order, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Kitchen lists the orders the kitchen still has to act on: pending and
// preparing, in backend order.
func (h *OrderHandler) Kitchen(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "kitchen queue", err)
		return
	}
	queue := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderStatus == enum.OrderStatusPending || o.OrderStatus == enum.OrderStatusPreparing {
			queue = append(queue, o)
		}
	}
	writeJSON(w, http.StatusOK, queue)
}

// UpdateStatus moves an order along its lifecycle and notifies the
// restaurant's live feed.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !enum.ValidOrderStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order status"})
		return
	}

	order, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get order for status update", err)
		return
	}
	if err := h.store.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeUpstreamError(w, r, "update order status", err)
		return
	}

	order.OrderStatus = req.Status
	h.broadcastStatus(order)
	writeJSON(w, http.StatusOK, order)
}

// Pay settles an order. Cash payments must cover the total; the change due
// is computed exactly and returned.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Method != enum.PaymentMethodCash && req.Method != enum.PaymentMethodCard {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment method"})
		return
	}

	order, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get order for payment", err)
		return
	}
	if order.OrderStatus == enum.OrderStatusPaid {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order is already paid"})
		return
	}

	total := decimal.NewFromFloat(order.TotalAmount)
	change := decimal.Zero
	if req.Method == enum.PaymentMethodCash {
		received := decimal.NewFromFloat(req.Received)
		if received.LessThan(total) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "received cash does not cover the total"})
			return
		}
		change = received.Sub(total)
	}

	if err := h.store.UpdateStatus(r.Context(), id, enum.OrderStatusPaid); err != nil {
		writeUpstreamError(w, r, "mark order paid", err)
		return
	}

	order.OrderStatus = enum.OrderStatusPaid
	h.broadcastStatus(order)
	writeJSON(w, http.StatusOK, paymentResponse{
		Success: true,
		OrderID: order.OrderID,
		Total:   total.InexactFloat64(),
		Change:  change.InexactFloat64(),
	})
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	var req upstream.UpdateOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OrderStatus != "" && !enum.ValidOrderStatus(req.OrderStatus) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order status"})
		return
	}
	if err := h.store.Update(r.Context(), id, req); err != nil {
		writeUpstreamError(w, r, "update order", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, "delete order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) broadcastStatus(order *domain.Order) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return
	}
	h.hub.BroadcastToRestaurant(order.RestaurantID, ws.Event{
		Type:    ws.EventOrderStatusChanged,
		Payload: payload,
	})
}
