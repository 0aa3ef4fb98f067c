package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/upstream"
)

// CategoryStore defines the backend operations menu-category handlers proxy.
// Satisfied by *upstream.CategoryService; narrow interface for testability.
type CategoryStore interface {
	List(ctx context.Context) ([]domain.MenuCategory, error)
	Get(ctx context.Context, id int64) (*domain.MenuCategory, error)
	Create(ctx context.Context, req upstream.CreateCategory) error
	Update(ctx context.Context, id int64, req upstream.UpdateCategory) error
	Delete(ctx context.Context, id int64) error
}

// CategoryHandler proxies menu-category CRUD to the backend.
type CategoryHandler struct {
	store CategoryStore
}

func NewCategoryHandler(store CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "list menu categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}
	category, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get menu category", err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req upstream.CreateCategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.MenuCategoryName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category name is required"})
		return
	}
	if err := h.store.Create(r.Context(), req); err != nil {
		writeUpstreamError(w, r, "create menu category", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}
	var req upstream.UpdateCategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.store.Update(r.Context(), id, req); err != nil {
		writeUpstreamError(w, r, "update menu category", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, "delete menu category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MenuItemStore defines the backend operations menu-item handlers proxy.
// Satisfied by *upstream.MenuItemService; narrow interface for testability.
type MenuItemStore interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.MenuItem, error)
	Create(ctx context.Context, req upstream.CreateMenuItem) error
	Update(ctx context.Context, id int64, req upstream.UpdateMenuItem) error
	Delete(ctx context.Context, id int64) error
}

// MenuItemHandler proxies menu-item CRUD to the backend.
type MenuItemHandler struct {
	store MenuItemStore
}

func NewMenuItemHandler(store MenuItemStore) *MenuItemHandler {
	return &MenuItemHandler{store: store}
}

func (h *MenuItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/category/{cid}", h.ListByCategory)
	r.Get("/{id}", h.Get)
}

// RegisterWriteRoutes registers menu-item mutations. Kept separate so the
// router can restrict them to the roles that hold menu management.
func (h *MenuItemHandler) RegisterWriteRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *MenuItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "list menu items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuItemHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	cid, err := parseID(r, "cid")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}
	items, err := h.store.ListByCategory(r.Context(), cid)
	if err != nil {
		writeUpstreamError(w, r, "list menu items by category", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}
	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req upstream.CreateMenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.MenuItemName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "menu item name is required"})
		return
	}
	if req.MenuItemPrice < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "menu item price must not be negative"})
		return
	}
	if err := h.store.Create(r.Context(), req); err != nil {
		writeUpstreamError(w, r, "create menu item", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}
	var req upstream.UpdateMenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.store.Update(r.Context(), id, req); err != nil {
		writeUpstreamError(w, r, "update menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, "delete menu item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
