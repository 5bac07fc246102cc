package security

import "strings"

const redactedValue = "***"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"passwd",
	"pwd",
	"passphrase",
	"authorization",
	"apikey",
	"api_key",
	"access_key",
	"private_key",
	"credential",
	"auth",
	"key",
	"sig",
	"cookie",
	"session",
	"jwt",
	"bearer",
	"secret",
}

// Keys that match a sensitive substring but only name a thing.
var safeKeys = map[string]struct{}{
	"secret_name": {},
	"key_id":      {},
	"ticket_key":  {},
	"toolcallid":  {},
}

// RedactArguments returns a deep copy of arguments with sensitive values replaced.
// Nested objects and arrays of objects are redacted by the same rules.
func RedactArguments(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	redacted := make(map[string]any, len(values))
	for key, value := range values {
		if IsSensitiveKey(key) {
			redacted[key] = redactedValue
			continue
		}
		redacted[key] = redactValue(value)
	}
	return redacted
}

func redactValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return RedactArguments(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item)
		}
		return out
	default:
		return value
	}
}

// IsSensitiveKey reports whether values under key should not be logged.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if _, ok := safeKeys[lower]; ok {
		return false
	}
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
