package sanitize

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Sanitize keeps the entries of a map[string]any payload whose key is in allowlist.
// Any other payload shape is returned unchanged. The input is never modified;
// dropped keys are returned sorted.
func Sanitize(payload any, allowlist *Allowlist) (any, []string) {
	args, ok := payload.(map[string]any)
	if !ok {
		return payload, nil
	}

	kept := make(map[string]any, len(args))
	var dropped []string
	for key, value := range args {
		if allowlist.Contains(key) {
			kept[key] = value
			continue
		}
		dropped = append(dropped, key)
	}
	sort.Strings(dropped)
	return kept, dropped
}

// SanitizeJSON is Sanitize for raw JSON arguments. Payloads that are not a JSON object,
// including malformed input, are returned byte-identical. Kept values are copied as raw
// JSON. When nothing is dropped the original bytes are returned.
func SanitizeJSON(raw json.RawMessage, allowlist *Allowlist) (json.RawMessage, []string) {
	fields, ok := decodeObject(raw)
	if !ok {
		return raw, nil
	}

	kept := make(map[string]json.RawMessage, len(fields))
	var dropped []string
	for key, value := range fields {
		if allowlist.Contains(key) {
			kept[key] = value
			continue
		}
		dropped = append(dropped, key)
	}
	if len(dropped) == 0 {
		return raw, nil
	}

	encoded, err := json.Marshal(kept)
	if err != nil {
		return raw, nil
	}
	sort.Strings(dropped)
	return encoded, dropped
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}
