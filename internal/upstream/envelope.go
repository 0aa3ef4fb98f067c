package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// The backend has shipped several envelope vintages for the same endpoints:
// bare payloads, {error, message, data}, and PascalCase variants. The
// normalizers below are the single place that tolerance lives; callers get a
// plain payload or a typed failure.

// ErrServerReported is wrapped around failures the backend flagged in an
// otherwise successful reply ({error: true, message: ...}).
var ErrServerReported = errors.New("server reported error")

type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Unwrap normalizes a reply to its payload. Bare arrays and objects pass
// through; enveloped replies yield their data field; an error flag becomes a
// failure carrying the server's message.
func Unwrap(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		// Not an object (bare number, string) -- pass through.
		return trimmed, nil //nolint:nilerr
	}
	if env.Error {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrServerReported, env.Message)
		}
		return nil, ErrServerReported
	}
	if len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return env.Data, nil
	}
	return trimmed, nil
}

// UnwrapInto unwraps raw and decodes the payload into v.
func UnwrapInto(raw json.RawMessage, v any) error {
	payload, err := Unwrap(raw)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// ExtractToken locates an issued bearer token in a login reply. Known
// placements: top-level token/Token, data.token (either casing on both
// halves), and data.data.token. Returns false when no token is present.
func ExtractToken(raw json.RawMessage) (string, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", false
	}
	return probeToken(m, 0)
}

func probeToken(m map[string]any, depth int) (string, bool) {
	for _, key := range []string{"token", "Token"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s, true
		}
	}
	if depth >= 2 {
		return "", false
	}
	for _, key := range []string{"data", "Data"} {
		if nested, ok := m[key].(map[string]any); ok {
			if s, found := probeToken(nested, depth+1); found {
				return s, true
			}
		}
	}
	return "", false
}

// ExtractCreatedID locates the identifier of a freshly created record.
// Known placements: bare numeric reply, top-level OrderID/id, and the same
// nested under data. Returns false if no identifier can be found, which the
// caller must treat as a hard failure.
func ExtractCreatedID(raw json.RawMessage) (int64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}

	var bare float64
	if err := json.Unmarshal(trimmed, &bare); err == nil {
		return int64(bare), bare != 0
	}

	var m map[string]any
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return 0, false
	}
	return probeID(m, 0)
}

func probeID(m map[string]any, depth int) (int64, bool) {
	for _, key := range []string{"OrderID", "id", "ID"} {
		switch v := m[key].(type) {
		case float64:
			if v != 0 {
				return int64(v), true
			}
		}
	}
	if depth >= 2 {
		return 0, false
	}
	for _, key := range []string{"data", "Data"} {
		switch nested := m[key].(type) {
		case map[string]any:
			if id, found := probeID(nested, depth+1); found {
				return id, true
			}
		case float64:
			if nested != 0 {
				return int64(nested), true
			}
		}
	}
	return 0, false
}
