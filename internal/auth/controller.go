// Package auth owns the terminal's session lifecycle: startup bootstrap from
// durable storage, login against the backend with offline fallback, and
// logout. All other packages read session state through the Controller and
// never touch storage directly.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/restro-pos/gateway/internal/session"
	"github.com/restro-pos/gateway/internal/upstream"
)

// State is the session controller's lifecycle position.
type State int

const (
	// StateResolving means the startup token check has not finished yet.
	// Guards hold rendering and must not redirect in this window.
	StateResolving State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// ErrLoginFailed is returned only when offline fallback is disabled by
// policy and the backend rejected or never answered the login.
var ErrLoginFailed = errors.New("login failed")

const (
	advisoryOffline     = "Login Successful (Offline Mode)"
	advisoryServerError = "Login Successful (Offline Mode - Server Error)"
)

// LoginClient issues the login request. Satisfied by *upstream.UserService;
// narrow interface for testability.
type LoginClient interface {
	Login(ctx context.Context, creds upstream.Credentials) (json.RawMessage, error)
}

// Options is the offline-fallback policy for synthesized sessions.
type Options struct {
	// OfflineFallback controls whether failed logins degrade to a local
	// synthesized session instead of reporting failure.
	OfflineFallback bool
	// DefaultRole is the role granted to synthesized sessions. Privileged on
	// purpose: the terminal is a demo/training surface when offline and the
	// backend remains the real authority.
	DefaultRole string
	// RestaurantID is the restaurant synthesized sessions belong to.
	RestaurantID int64
}

// LoginResult reports a completed login. Advisory is non-empty when the
// session was synthesized locally.
type LoginResult struct {
	Session  *session.Session
	Advisory string
}

// Controller is the single owner of session state.
type Controller struct {
	store  session.Store
	client LoginClient
	opts   Options

	mu      sync.RWMutex
	state   State
	current *session.Session
}

func NewController(store session.Store, client LoginClient, opts Options) *Controller {
	if opts.DefaultRole == "" {
		opts.DefaultRole = "manager"
	}
	if opts.RestaurantID == 0 {
		opts.RestaurantID = 1
	}
	return &Controller{
		store:  store,
		client: client,
		opts:   opts,
		state:  StateResolving,
	}
}

// Bootstrap resolves the startup state from durable storage. A real token
// must decode; a decode failure clears storage. An offline token is restored
// from the persisted user record, since it carries no claims of its own.
func (c *Controller) Bootstrap(ctx context.Context) {
	token, user, err := c.store.Get(ctx)
	if err != nil {
		log.Printf("session bootstrap: read store: %v", err)
		c.transition(StateAnonymous, nil)
		return
	}
	if token == "" {
		c.transition(StateAnonymous, nil)
		return
	}

	if session.IsOfflineToken(token) {
		if user == nil {
			c.clearStorage(ctx)
			c.transition(StateAnonymous, nil)
			return
		}
		c.transition(StateAuthenticated, user)
		return
	}

	decoded := session.Decode(token)
	if decoded == nil {
		c.clearStorage(ctx)
		c.transition(StateAnonymous, nil)
		return
	}
	c.transition(StateAuthenticated, decoded)
}

// Login authenticates against the backend. Every reply shape that does not
// yield a decodable token degrades to a synthesized offline session (unless
// disabled by policy), so the terminal stays usable when the backend is
// down, broken, or rejecting credentials.
func (c *Controller) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	raw, err := c.client.Login(ctx, upstream.Credentials{UserName: username, Password: password})
	if err != nil {
		log.Printf("login transport failure: %v", err)
		return c.offlineLogin(ctx, username, advisoryOffline, err)
	}

	var flag struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &flag); err == nil && flag.Error {
		log.Printf("login rejected by server: %s", flag.Message)
		return c.offlineLogin(ctx, username, advisoryServerError,
			fmt.Errorf("%w: %s", ErrLoginFailed, flag.Message))
	}

	token, found := upstream.ExtractToken(raw)
	if !found {
		log.Printf("login reply carried no token, activating offline mode")
		return c.offlineLogin(ctx, username, advisoryOffline,
			fmt.Errorf("%w: reply carried no token", ErrLoginFailed))
	}

	decoded := session.Decode(token)
	if decoded == nil {
		log.Printf("login token did not decode, activating offline mode")
		return c.offlineLogin(ctx, username, advisoryOffline,
			fmt.Errorf("%w: issued token did not decode", ErrLoginFailed))
	}

	if err := c.store.Set(ctx, token, decoded); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	c.transition(StateAuthenticated, decoded)
	return &LoginResult{Session: decoded}, nil
}

// offlineLogin synthesizes a local session for the submitted username, or
// reports cause when fallback is disabled.
func (c *Controller) offlineLogin(ctx context.Context, username, advisory string, cause error) (*LoginResult, error) {
	if !c.opts.OfflineFallback {
		if errors.Is(cause, ErrLoginFailed) {
			return nil, cause
		}
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, cause)
	}

	synthesized := &session.Session{
		UserID:       1,
		UserName:     username,
		UserRole:     c.opts.DefaultRole,
		RestaurantID: c.opts.RestaurantID,
	}
	if err := c.store.Set(ctx, session.NewOfflineToken(), synthesized); err != nil {
		return nil, fmt.Errorf("persist offline session: %w", err)
	}
	c.transition(StateAuthenticated, synthesized)
	return &LoginResult{Session: synthesized, Advisory: advisory}, nil
}

// Logout clears durable storage and returns to Anonymous. It never fails:
// storage errors are logged, the in-memory transition happens regardless.
func (c *Controller) Logout(ctx context.Context) {
	c.clearStorage(ctx)
	c.transition(StateAnonymous, nil)
}

// Invalidate is called when the backend rejected the stored credential
// mid-session (the adapter has already cleared storage). Idempotent.
func (c *Controller) Invalidate(ctx context.Context) {
	c.clearStorage(ctx)
	c.transition(StateAnonymous, nil)
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Current returns a copy of the active session, or nil.
func (c *Controller) Current() *session.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	s := *c.current
	return &s
}

func (c *Controller) transition(next State, user *session.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = next
	c.current = user
}

func (c *Controller) clearStorage(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		log.Printf("clear session storage: %v", err)
	}
}
