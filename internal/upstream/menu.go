package upstream

import (
	"context"
	"fmt"

	"github.com/restro-pos/gateway/internal/domain"
)

type CategoryService struct {
	c *Client
}

func NewCategoryService(c *Client) *CategoryService {
	return &CategoryService{c: c}
}

type CreateCategory struct {
	MenuCategoryName        string `json:"MenuCategoryName"`
	MenuCategoryDescription string `json:"MenuCategoryDescription,omitempty"`
	MenuCategoryImagePath   string `json:"MenuCategoryImagePath,omitempty"`
	RestaurantID            int64  `json:"RestaurantID,omitempty"`
}

type UpdateCategory struct {
	MenuCategoryID          int64  `json:"MenuCategoryID"`
	MenuCategoryName        string `json:"MenuCategoryName,omitempty"`
	MenuCategoryDescription string `json:"MenuCategoryDescription,omitempty"`
	MenuCategoryImagePath   string `json:"MenuCategoryImagePath,omitempty"`
	RestaurantID            int64  `json:"RestaurantID,omitempty"`
}

func (s *CategoryService) List(ctx context.Context) ([]domain.MenuCategory, error) {
	raw, err := s.c.Get(ctx, "/menu-categories")
	if err != nil {
		return nil, err
	}
	var out []domain.MenuCategory
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.MenuCategory, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/menu-categories/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.MenuCategory
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CategoryService) ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.MenuCategory, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/menu-categories/restaurant/%d", restaurantID))
	if err != nil {
		return nil, err
	}
	var out []domain.MenuCategory
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, req CreateCategory) error {
	_, err := s.c.Post(ctx, "/menu-categories", req)
	return err
}

func (s *CategoryService) Update(ctx context.Context, id int64, req UpdateCategory) error {
	req.MenuCategoryID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/menu-categories/%d", id), req)
	return err
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/menu-categories/%d", id))
	return err
}

type MenuItemService struct {
	c *Client
}

func NewMenuItemService(c *Client) *MenuItemService {
	return &MenuItemService{c: c}
}

type CreateMenuItem struct {
	MenuItemName      string  `json:"MenuItemName"`
	MenuItemPrice     float64 `json:"MenuItemPrice"`
	MenuCategoryID    int64   `json:"MenuCategoryID"`
	MenuItemImagePath string  `json:"MenuItemImagePath,omitempty"`
}

type UpdateMenuItem struct {
	MenuItemID        int64    `json:"MenuItemID"`
	MenuItemName      string   `json:"MenuItemName,omitempty"`
	MenuItemPrice     *float64 `json:"MenuItemPrice,omitempty"`
	MenuCategoryID    int64    `json:"MenuCategoryID,omitempty"`
	MenuItemImagePath string   `json:"MenuItemImagePath,omitempty"`
}

func (s *MenuItemService) List(ctx context.Context) ([]domain.MenuItem, error) {
	raw, err := s.c.Get(ctx, "/menu-items")
	if err != nil {
		return nil, err
	}
	var out []domain.MenuItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MenuItemService) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/menu-items/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.MenuItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MenuItemService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/menu-items/category/%d", categoryID))
	if err != nil {
		return nil, err
	}
	var out []domain.MenuItem
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MenuItemService) Create(ctx context.Context, req CreateMenuItem) error {
	_, err := s.c.Post(ctx, "/menu-items", req)
	return err
}

func (s *MenuItemService) Update(ctx context.Context, id int64, req UpdateMenuItem) error {
	req.MenuItemID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/menu-items/%d", id), req)
	return err
}

func (s *MenuItemService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/menu-items/%d", id))
	return err
}
