package dsl

import "fmt"

// defaultInputSchema is used by tools that declare no input_schema: no parameters.
func defaultInputSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"additionalProperties": false,
	}
}

func normalizeConfig(cfg *Config) error {
	for i := range cfg.Tools {
		schema := &cfg.Tools[i].InputSchema
		if schema.IsZero() {
			schema.Document = defaultInputSchema()
			continue
		}
		normalized, err := normalizeValue(schema.Document)
		if err != nil {
			return fmt.Errorf("tools[%d].input_schema: %w", i, err)
		}
		doc, ok := normalized.(map[string]any)
		if !ok {
			return fmt.Errorf("tools[%d].input_schema: schema must be an object", i)
		}
		schema.Document = doc
	}
	return nil
}

// normalizeValue converts YAML maps with interface keys into JSON-compatible maps.
func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			normalized, err := normalizeValue(val)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("schema key must be string, got %T", key)
			}
			normalized, err := normalizeValue(val)
			if err != nil {
				return nil, err
			}
			out[keyStr] = normalized
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			normalized, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	default:
		return value, nil
	}
}
