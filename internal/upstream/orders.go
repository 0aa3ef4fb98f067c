package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/restro-pos/gateway/internal/domain"
)

type OrderService struct {
	c *Client
}

func NewOrderService(c *Client) *OrderService {
	return &OrderService{c: c}
}

type CreateOrder struct {
	TableID      int64   `json:"TableID"`
	TotalAmount  float64 `json:"TotalAmount"`
	OrderStatus  string  `json:"OrderStatus,omitempty"`
	RestaurantID int64   `json:"RestaurantID,omitempty"`
}

type UpdateOrder struct {
	OrderID      int64   `json:"OrderID"`
	TableID      int64   `json:"TableID,omitempty"`
	TotalAmount  *float64 `json:"TotalAmount,omitempty"`
	OrderStatus  string  `json:"OrderStatus,omitempty"`
	RestaurantID int64   `json:"RestaurantID,omitempty"`
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	raw, err := s.c.Get(ctx, "/orders")
	if err != nil {
		return nil, err
	}
	var out []domain.Order
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/orders/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.Order
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) ListByTable(ctx context.Context, tableID int64) ([]domain.Order, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/orders/table/%d", tableID))
	if err != nil {
		return nil, err
	}
	var out []domain.Order
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create returns the backend's raw reply: creation envelopes vary and the
// order workflow extracts the new identifier itself.
func (s *OrderService) Create(ctx context.Context, req CreateOrder) (json.RawMessage, error) {
	return s.c.Post(ctx, "/orders", req)
}

func (s *OrderService) Update(ctx context.Context, id int64, req UpdateOrder) error {
	req.OrderID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/orders/%d", id), req)
	return err
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	body := map[string]any{"OrderID": id, "OrderStatus": status}
	_, err := s.c.Patch(ctx, fmt.Sprintf("/orders/%d", id), body)
	return err
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/orders/%d", id))
	return err
}

type OrderItemService struct {
	c *Client
}

func NewOrderItemService(c *Client) *OrderItemService {
	return &OrderItemService{c: c}
}

type CreateOrderItem struct {
	OrderID    int64 `json:"OrderID"`
	MenuItemID int64 `json:"MenuItemID"`
	Quantity   int64 `json:"Quantity,omitempty"`
}

type UpdateOrderItem struct {
	OrderItemID int64 `json:"OrderItemID"`
	OrderID     int64 `json:"OrderID,omitempty"`
	MenuItemID  int64 `json:"MenuItemID,omitempty"`
	Quantity    int64 `json:"Quantity,omitempty"`
}

func (s *OrderItemService) List(ctx context.Context) ([]domain.OrderItem, error) {
	raw, err := s.c.Get(ctx, "/order-items")
	if err != nil {
		return nil, err
	}
	var out []domain.OrderItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderItemService) Get(ctx context.Context, id int64) (*domain.OrderItem, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/order-items/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.OrderItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderItemService) ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/order-items/order/%d", orderID))
	if err != nil {
		return nil, err
	}
	var out []domain.OrderItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderItemService) ListByMenuItem(ctx context.Context, menuItemID int64) ([]domain.OrderItem, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/order-items/menu-item/%d", menuItemID))
	if err != nil {
		return nil, err
	}
	var out []domain.OrderItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderItemService) Create(ctx context.Context, req CreateOrderItem) error {
	_, err := s.c.Post(ctx, "/order-items", req)
	return err
}

func (s *OrderItemService) Update(ctx context.Context, id int64, req UpdateOrderItem) error {
	req.OrderItemID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/order-items/%d", id), req)
	return err
}

func (s *OrderItemService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/order-items/%d", id))
	return err
}
