package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/upstream"
)

// RestaurantStore defines the backend operations restaurant handlers proxy.
// Satisfied by *upstream.RestaurantService; narrow interface for testability.
type RestaurantStore interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int64) (*domain.Restaurant, error)
	Create(ctx context.Context, req upstream.CreateRestaurant) error
	Update(ctx context.Context, id int64, req upstream.UpdateRestaurant) error
	Delete(ctx context.Context, id int64) error
}

// RestaurantHandler proxies restaurant CRUD to the backend.
type RestaurantHandler struct {
	store RestaurantStore
}

func NewRestaurantHandler(store RestaurantStore) *RestaurantHandler {
	return &RestaurantHandler{store: store}
}

func (h *RestaurantHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Handlers ---

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "list restaurants", err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid restaurant ID"})
		return
	}
	restaurant, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req upstream.CreateRestaurant
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.RestaurantName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "restaurant name is required"})
		return
	}
	if err := h.store.Create(r.Context(), req); err != nil {
		writeUpstreamError(w, r, "create restaurant", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid restaurant ID"})
		return
	}
	var req upstream.UpdateRestaurant
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.store.Update(r.Context(), id, req); err != nil {
		writeUpstreamError(w, r, "update restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid restaurant ID"})
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, "delete restaurant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
