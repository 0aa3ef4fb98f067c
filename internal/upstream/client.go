// Package upstream is the gateway's only boundary with the backend REST API.
// It owns bearer-credential injection, expired-session detection, and the
// offline fixture fallback that keeps a synthesized session usable when the
// backend rejects it.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/restro-pos/gateway/internal/session"
)

// ErrSessionExpired reports that the backend rejected the stored credential.
// The durable session has already been cleared when this is returned; the
// caller's only job is to route the operator back to login.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx reply from the backend, carrying whatever detail the
// server provided so it can be surfaced verbatim.
type APIError struct {
	Status  int
	Message string
	Body    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend replied %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend replied %d", e.Status)
}

// Client performs authorized calls against the backend API. If the stored
// token is offline-synthesized, 401 replies are absorbed and answered from
// the fixture dataset instead of propagating.
type Client struct {
	baseURL string
	store   session.Store
	http    *http.Client
	expired func(context.Context)
}

func NewClient(baseURL string, store session.Store, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Timeout: timeout},
	}
}

// OnSessionExpired registers a hook invoked after a real token is rejected
// and durable storage has been cleared. The session controller uses it to
// fall back to the anonymous state.
func (c *Client) OnSessionExpired(fn func(context.Context)) {
	c.expired = fn
}

// Do issues one request. Path is relative ("/orders", "/tables/3"). A nil
// body sends no payload; otherwise body is JSON-encoded. The returned bytes
// are the backend's raw reply (or a fixture on the offline path).
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, _, err := c.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read reply: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if token != "" && session.IsOfflineToken(token) {
			// Offline session: the backend will never accept this token.
			// Answer from fixtures and carry on; nothing is persisted.
			log.Printf("offline mode: intercepted 401 for %s, serving fixture data", path)
			return FixtureFor(path), nil
		}
		if err := c.store.Clear(ctx); err != nil {
			log.Printf("clear expired session: %v", err)
		}
		if c.expired != nil {
			c.expired(ctx)
		}
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: serverMessage(raw),
			Body:    raw,
		}
	}

	return raw, nil
}

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// serverMessage pulls the human-readable detail out of an error reply, if
// the backend included one.
func serverMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	if s, ok := env.Error.(string); ok {
		return s
	}
	return ""
}
