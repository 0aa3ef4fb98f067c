package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/restro-pos/gateway/internal/domain"
)

type UserService struct {
	c *Client
}

func NewUserService(c *Client) *UserService {
	return &UserService{c: c}
}

type Credentials struct {
	UserName string `json:"UserName"`
	Password string `json:"Password"`
}

type CreateUser struct {
	UserName     string `json:"UserName"`
	Password     string `json:"Password"`
	UserRole     string `json:"UserRole"`
	RestaurantID int64  `json:"RestaurantID,omitempty"`
}

type UpdateUser struct {
	UserID       int64  `json:"UserID"`
	UserName     string `json:"UserName,omitempty"`
	UserRole     string `json:"UserRole,omitempty"`
	RestaurantID int64  `json:"RestaurantID,omitempty"`
}

// Login forwards credentials and returns the backend's raw reply. The
// session controller owns envelope interpretation; several token placements
// are in circulation.
func (s *UserService) Login(ctx context.Context, creds Credentials) (json.RawMessage, error) {
	return s.c.Post(ctx, "/users/login", creds)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	raw, err := s.c.Get(ctx, "/users")
	if err != nil {
		return nil, err
	}
	var out []domain.User
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	raw, err := s.c.Get(ctx, fmt.Sprintf("/users/%d", id))
	if err != nil {
		return nil, err
	}
	var out domain.User
	if err := UnwrapInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Create(ctx context.Context, req CreateUser) error {
	_, err := s.c.Post(ctx, "/users", req)
	return err
}

func (s *UserService) Update(ctx context.Context, id int64, req UpdateUser) error {
	req.UserID = id
	_, err := s.c.Patch(ctx, fmt.Sprintf("/users/%d", id), req)
	return err
}

func (s *UserService) UpdatePassword(ctx context.Context, id int64, password string) error {
	body := map[string]string{"Password": password}
	_, err := s.c.Post(ctx, fmt.Sprintf("/users/updatePassword/%d", id), body)
	return err
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Delete(ctx, fmt.Sprintf("/users/%d", id))
	return err
}
