package logger

import (
	"encoding/json"
	"strings"
)

// Redacted replaces the value of any sensitive field in log output.
const Redacted = "[REDACTED]"

// sensitiveKeyParts flags a field as sensitive when its key contains any of
// these substrings, case-insensitive.
var sensitiveKeyParts = []string{"apikey", "token", "authorization", "password", "secret"}

// SensitiveKey reports whether a field key holds a secret.
func SensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// Redact returns a deep copy of v with every sensitive field replaced by the
// redaction marker. Nested objects and arrays are walked recursively; structs
// are normalized through their JSON representation first so their tagged
// field names are the ones inspected.
func Redact(v any) any {
	return redactAny(normalize(v))
}

// redactValue redacts a single field value under the given key.
func redactValue(key string, v any) any {
	if SensitiveKey(key) {
		return Redacted
	}
	switch v.(type) {
	case nil, bool, string, int, int32, int64, uint, uint32, uint64, float32, float64:
		return v
	default:
		return Redact(v)
	}
}

func redactAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if SensitiveKey(k) {
				out[k] = Redacted
				continue
			}
			out[k] = redactAny(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = redactAny(inner)
		}
		return out
	default:
		return v
	}
}

// normalize converts arbitrary values (structs, typed maps/slices) into the
// map[string]any / []any shape redactAny walks.
func normalize(v any) any {
	switch v.(type) {
	case nil, map[string]any, []any:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
