package upstream

import (
	"context"
	"fmt"

	"github.com/restro-pos/gateway/internal/domain"
)

type TableService struct {
	c *Client
}

func NewTableService(c *Client) *TableService {
	return &TableService{c: c}
}

type CreateTable struct {
	TableNumber   int64  `json:"TableNumber"`
	TableCapacity int64  `json:"TableCapacity"`
	TableStatus   string `json:"TableStatus,omitempty"`
	RestaurantID  int64  `json:"RestaurantID,omitempty"`
}

type UpdateTable struct {
	TableID       int64  `json:"TableID"`
	TableNumber   int64  `json:"TableNumber,omitempty"`
	TableCapacity int64  `json:"TableCapacity,omitempty"`
	TableStatus   string `json:"TableStatus,omitempty"`
	RestaurantID  int64  `json:"RestaurantID,omitempty"`
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	raw, err := s.c.Get(ctx, "/tables")
	if err != nil {
		return nil, err
	}
	var out []domain.Table
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TableService) Get(ctx context.Context, id int64) (*domain.Table, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/tables/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.Table
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TableService) ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Table, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/tables/restaurant/%d", restaurantID))
	if err != nil {
		return nil, err
	}
	var out []domain.Table
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TableService) Create(ctx context.Context, req CreateTable) error {
	_, err := s.c.Post(ctx, "/tables", req)
	return err
}

func (s *TableService) Update(ctx context.Context, id int64, req UpdateTable) error {
	req.TableID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/tables/%d", id), req)
	return err
}

func (s *TableService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/tables/%d", id))
	return err
}
