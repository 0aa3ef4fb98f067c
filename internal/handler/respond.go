// Package handler exposes the terminal's HTTP surface: session endpoints,
// dashboard aggregation, entity CRUD proxied to the backend, and the
// order-taking workflow.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restro-pos/gateway/internal/middleware"
	"github.com/restro-pos/gateway/internal/upstream"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}

// writeUpstreamError translates adapter failures into terminal responses.
// An expired session routes the operator back to login; anything the backend
// reported is surfaced with the server's own detail so the operator sees the
// real cause rather than a generic failure.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, upstream.ErrSessionExpired) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}

	log.Printf("ERROR: %s: %v", op, err)

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "backend request failed"
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}
	if errors.Is(err, upstream.ErrServerReported) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "backend unreachable"})
}

func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
