package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/domain"
	"github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/pos"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/restro-pos/gateway/internal/ws"
)

// TableGetter resolves the table an operator selects for the next order.
// Satisfied by *upstream.TableService.
type TableGetter interface {
	Get(ctx context.Context, id int64) (*domain.Table, error)
}

// POSHandler drives the order-taking workflow: table selection, the basket,
// and submission.
type POSHandler struct {
	workflow *pos.Workflow
	tables   TableGetter
	hub      Broadcaster
}

func NewPOSHandler(workflow *pos.Workflow, tables TableGetter, hub Broadcaster) *POSHandler {
	return &POSHandler{workflow: workflow, tables: tables, hub: hub}
}

func (h *POSHandler) RegisterRoutes(r chi.Router) {
	r.Get("/basket", h.Basket)
	r.Post("/basket/items", h.AddItem)
	r.Patch("/basket/items/{id}", h.AdjustQuantity)
	r.Delete("/basket/items/{id}", h.RemoveItem)
	r.Post("/table", h.SelectTable)
	r.Post("/reset", h.Reset)
	r.Post("/submit", h.Submit)
}

// --- Request / Response types ---

type addItemRequest struct {
	Item domain.MenuItem `json:"item"`
}

type adjustQuantityRequest struct {
	Delta int64 `json:"delta"`
}

type selectTableRequest struct {
	TableID int64 `json:"TableID"`
}

type basketResponse struct {
	Table *domain.Table `json:"table"`
	Lines []pos.Line    `json:"lines"`
	Total string        `json:"total"`
}

// --- Handlers ---

// Basket returns the in-progress order: selected table, lines, and the
// running total.
func (h *POSHandler) Basket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.basketSnapshot())
}

// AddItem puts one menu item in the basket. Adding an item that is already
// present bumps its quantity.
func (h *POSHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Item.MenuItemID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "menu item ID is required"})
		return
	}
	h.workflow.Basket().Add(req.Item)
	writeJSON(w, http.StatusOK, h.basketSnapshot())
}

// AdjustQuantity changes a line's quantity by the given delta. The quantity
// floors at one; removing a line is a separate action.
func (h *POSHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}
	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.workflow.Basket().AdjustQuantity(id, req.Delta)
	writeJSON(w, http.StatusOK, h.basketSnapshot())
}

// RemoveItem drops a line from the basket entirely.
func (h *POSHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}
	h.workflow.Basket().Remove(id)
	writeJSON(w, http.StatusOK, h.basketSnapshot())
}

// SelectTable resolves the table against the backend and pins the next
// submission to it.
func (h *POSHandler) SelectTable(w http.ResponseWriter, r *http.Request) {
	var req selectTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.TableID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "table ID is required"})
		return
	}
	table, err := h.tables.Get(r.Context(), req.TableID)
	if err != nil {
		writeUpstreamError(w, r, "resolve table", err)
		return
	}
	h.workflow.SelectTable(*table)
	writeJSON(w, http.StatusOK, h.basketSnapshot())
}

// Reset discards the in-progress order.
func (h *POSHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.workflow.Reset()
	writeJSON(w, http.StatusOK, h.basketSnapshot())
}

// Submit turns the basket into an order plus line items on the backend. On
// partial line-item failure the order exists upstream with the lines that
// made it; the basket stays intact so the operator can retry, and the reply
// names the lines that failed.
func (h *POSHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}

	result, err := h.workflow.Submit(r.Context(), sess.RestaurantID)
	switch {
	case errors.Is(err, pos.ErrNoTableSelected), errors.Is(err, pos.ErrEmptyBasket):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, upstream.ErrSessionExpired):
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	case err != nil && result != nil:
		// Partial failure: the order was created, some lines were not.
		h.broadcastCreated(sess.RestaurantID, result)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  err.Error(),
			"result": result,
		})
		return
	case err != nil:
		writeUpstreamError(w, r, "submit order", err)
		return
	}

	h.broadcastCreated(sess.RestaurantID, result)
	writeJSON(w, http.StatusCreated, result)
}

func (h *POSHandler) basketSnapshot() basketResponse {
	return basketResponse{
		Table: h.workflow.SelectedTable(),
		Lines: h.workflow.Basket().Lines(),
		Total: h.workflow.Basket().Total().StringFixed(2),
	}
}

func (h *POSHandler) broadcastCreated(restaurantID int64, result *pos.SubmitResult) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	h.hub.BroadcastToRestaurant(restaurantID, ws.Event{
		Type:    ws.EventOrderCreated,
		Payload: payload,
	})
}
