package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/enum"
	"github.com/restro-pos/gateway/internal/upstream"
)

// TableStore defines the backend operations table handlers proxy.
// Satisfied by *upstream.TableService; narrow interface for testability.
type TableStore interface {
	List(ctx context.Context) ([]domain.Table, error)
	Get(ctx context.Context, id int64) (*domain.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Table, error)
	Create(ctx context.Context, req upstream.CreateTable) error
	Update(ctx context.Context, id int64, req upstream.UpdateTable) error
	Delete(ctx context.Context, id int64) error
}

// TableHandler proxies table CRUD to the backend.
type TableHandler struct {
	store TableStore
}

func NewTableHandler(store TableStore) *TableHandler {
	return &TableHandler{store: store}
}

func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/restaurant/{rid}", h.ListByRestaurant)
	r.Get("/{id}", h.Get)
}

// RegisterWriteRoutes registers table mutations. Kept separate so the router
// can restrict them to the roles that hold table management.
func (h *TableHandler) RegisterWriteRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Handlers ---

func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, "list tables", err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *TableHandler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	rid, err := parseID(r, "rid")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid restaurant ID"})
		return
	}
	tables, err := h.store.ListByRestaurant(r.Context(), rid)
	if err != nil {
		writeUpstreamError(w, r, "list tables by restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	table, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, "get table", err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req upstream.CreateTable
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.TableNumber <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "table number is required"})
		return
	}
	if req.TableStatus == "" {
		req.TableStatus = enum.TableStatusFree
	}
	if err := h.store.Create(r.Context(), req); err != nil {
		writeUpstreamError(w, r, "create table", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	var req upstream.UpdateTable
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.store.Update(r.Context(), id, req); err != nil {
		writeUpstreamError(w, r, "update table", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, "delete table", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
