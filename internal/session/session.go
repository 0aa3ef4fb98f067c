package session

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OfflineTokenPrefix marks tokens synthesized locally when the backend is
// unreachable or rejects login. Such tokens never pass signature checks
// upstream; the client adapter recognizes the prefix and serves fixtures
// instead of failing.
const OfflineTokenPrefix = "offline-"

// Session is the normalized identity held by the terminal for one login.
type Session struct {
	UserID       int64  `json:"UserID"`
	UserName     string `json:"UserName"`
	UserRole     string `json:"UserRole"`
	RestaurantID int64  `json:"RestaurantID"`
}

// NewOfflineToken returns a fresh synthesized token.
func NewOfflineToken() string {
	return OfflineTokenPrefix + uuid.NewString()
}

// IsOfflineToken reports whether token was synthesized locally.
func IsOfflineToken(token string) bool {
	return strings.HasPrefix(token, OfflineTokenPrefix)
}

// Decode extracts the identity embedded in a bearer token's claims segment.
// The signature is never verified here; the backend is the authority and the
// terminal only needs the identity for display and role gating. Returns nil
// if the token is not three dot-separated segments or the claims segment does
// not decode.
//
// Backends of several vintages issued the same fields under different
// casings, sometimes nested under a "data" claim. Decode normalizes all of
// them to one shape and lower-cases the role.
func Decode(token string) *Session {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	m := map[string]any(claims)
	if _, found := m["UserID"]; !found {
		if nested, ok := m["data"].(map[string]any); ok {
			m = nested
		}
	}

	id, ok := claimInt64(m, "UserID", "userId", "UserId")
	if !ok {
		return nil
	}
	name, _ := claimString(m, "UserName", "userName", "username")
	role, _ := claimString(m, "UserRole", "userRole", "role")
	restaurantID, _ := claimInt64(m, "RestaurantID", "restaurantID", "restaurantId")

	return &Session{
		UserID:       id,
		UserName:     name,
		UserRole:     strings.ToLower(role),
		RestaurantID: restaurantID,
	}
}

func claimString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			switch s := v.(type) {
			case string:
				return s, true
			case float64:
				return strconv.FormatInt(int64(s), 10), true
			}
		}
	}
	return "", false
}

func claimInt64(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			switch n := v.(type) {
			case float64:
				return int64(n), true
			case string:
				if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
					return parsed, true
				}
			}
		}
	}
	return 0, false
}
