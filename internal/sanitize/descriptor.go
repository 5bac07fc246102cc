package sanitize

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Descriptor declares the parameter names of a tool handler.
type Descriptor interface {
	// Parameters returns parameter names in declaration order.
	Parameters() ([]string, error)
}

// DescriptorFunc adapts a function to Descriptor.
type DescriptorFunc func() ([]string, error)

// Parameters calls f.
func (f DescriptorFunc) Parameters() ([]string, error) {
	return f()
}

// For describes the JSON fields of the struct type T.
func For[T any]() Descriptor {
	return ForType(reflect.TypeFor[T]())
}

// ForType describes the JSON fields of a struct type or pointer to struct.
func ForType(t reflect.Type) Descriptor {
	return typeDescriptor{t: t}
}

type typeDescriptor struct {
	t reflect.Type
}

func (d typeDescriptor) Parameters() ([]string, error) {
	t := d.t
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%v is not a struct type", d.t)
	}
	return structFields(t, map[reflect.Type]bool{}), nil
}

// structFields follows encoding/json naming: tag names win, "-" is skipped,
// untagged embedded structs are flattened.
func structFields(t reflect.Type, visited map[reflect.Type]bool) []string {
	if visited[t] {
		return nil
	}
	visited[t] = true

	var names []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				names = append(names, structFields(ft, visited)...)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}

// FromSchema describes the top-level properties of a JSON Schema object.
// schema may be a map, raw JSON or *jsonschema.Schema. Names listed in order come
// first; properties missing from order follow sorted.
func FromSchema(schema any, order []string) Descriptor {
	return schemaDescriptor{schema: schema, order: order}
}

type schemaDescriptor struct {
	schema any
	order  []string
}

func (d schemaDescriptor) Parameters() ([]string, error) {
	schema, err := decodeSchema(d.schema)
	if err != nil {
		return nil, err
	}
	if schema.Type != "object" && !slices.Contains(schema.Types, "object") {
		return nil, fmt.Errorf("schema type must be object")
	}

	names := make([]string, 0, len(schema.Properties))
	seen := make(map[string]struct{}, len(schema.Properties))
	for _, name := range d.order {
		if _, ok := schema.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	var rest []string
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...), nil
}

func decodeSchema(value any) (*jsonschema.Schema, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, errors.New("schema is nil")
	case *jsonschema.Schema:
		if v == nil {
			return nil, errors.New("schema is nil")
		}
		return v, nil
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode schema: %w", err)
		}
		data = encoded
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &schema, nil
}
