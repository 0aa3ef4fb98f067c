package upstream

import (
	"context"
	"fmt"

	"github.com/restro-pos/gateway/internal/domain"
)

type RestaurantService struct {
	c *Client
}

func NewRestaurantService(c *Client) *RestaurantService {
	return &RestaurantService{c: c}
}

type CreateRestaurant struct {
	RestaurantName    string `json:"RestaurantName"`
	RestaurantAddress string `json:"RestaurantAddress,omitempty"`
	RestaurantPhone   string `json:"RestaurantPhone,omitempty"`
}

type UpdateRestaurant struct {
	RestaurantID      int64  `json:"RestaurantID"`
	RestaurantName    string `json:"RestaurantName,omitempty"`
	RestaurantAddress string `json:"RestaurantAddress,omitempty"`
	RestaurantPhone   string `json:"RestaurantPhone,omitempty"`
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	raw, err := s.c.Get(ctx, "/restaurants")
	if err != nil {
		return nil, err
	}
	var out []domain.Restaurant
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/restaurants/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.Restaurant
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestaurantService) Create(ctx context.Context, req CreateRestaurant) error {
	_, err := s.c.Post(ctx, "/restaurants", req)
	return err
}

func (s *RestaurantService) Update(ctx context.Context, id int64, req UpdateRestaurant) error {
	req.RestaurantID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/restaurants/%d", id), req)
	return err
}

func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/restaurants/%d", id))
	return err
}
