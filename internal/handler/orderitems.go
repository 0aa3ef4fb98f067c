package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/upstream"
)

// OrderItemStore defines the backend operations order-item handlers proxy.
// Satisfied by *upstream.OrderItemService; narrow interface for testability.
type OrderItemStore interface {
	List(ctx context.Context) ([]domain.OrderItem, error)
	Get(ctx context.Context, id int64) (*domain.OrderItem, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	ListByMenuItem(ctx context.Context, menuItemID int64) ([]domain.OrderItem, error)
	Create(ctx context.Context, req upstream.CreateOrderItem) error
	Update(ctx context.Context, id int64, req upstream.UpdateOrderItem) error
	Delete(ctx context.Context, id int64) error
}

// OrderItemHandler proxies order-line CRUD to the backend.
type OrderItemHandler struct {
	store OrderItemStore
}

func NewOrderItemHandler(store OrderItemStore) *OrderItemHandler {
	return &OrderItemHandler{store: store}
}

func (h *OrderItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/order/{oid}", h.ListByOrder)
	r.Get("/menu-item/{mid}", h.ListByMenuItem)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *OrderItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "list order items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *OrderItemHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	oid, err := parseID(r, "oid")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	items, err := h.store.ListByOrder(r.Context(), oid)
	if err != nil {
		writeUpstreamError(w, r, "list order items by order", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *OrderItemHandler) ListByMenuItem(w http.ResponseWriter, r *http.Request) {
	mid, err := parseID(r, "mid")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}
	items, err := h.store.ListByMenuItem(r.Context(), mid)
	if err != nil {
		writeUpstreamError(w, r, "list order items by menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *OrderItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order item ID"})
		return
	}
	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get order item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *OrderItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req upstream.CreateOrderItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OrderID <= 0 || req.MenuItemID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order ID and menu item ID are required"})
		return
	}
	if err := h.store.Create(r.Context(), req); err != nil {
		writeUpstreamError(w, r, "create order item", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *OrderItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order item ID"})
		return
	}
	var req upstream.UpdateOrderItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.store.Update(r.Context(), id, req); err != nil {
		writeUpstreamError(w, r, "update order item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *OrderItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order item ID"})
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, "delete order item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
