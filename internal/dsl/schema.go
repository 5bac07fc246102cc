package dsl

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is a JSON Schema document declared in YAML.
type Schema struct {
	// Document is the schema as generic JSON values.
	Document map[string]any
	// PropertyOrder lists top-level property names as written.
	PropertyOrder []string
}

// UnmarshalYAML decodes the document and records property order.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: schema must be a mapping", node.Line)
	}
	var doc map[string]any
	if err := node.Decode(&doc); err != nil {
		return err
	}
	s.Document = doc
	s.PropertyOrder = propertyOrder(node)
	return nil
}

// IsZero reports whether no schema was declared.
func (s Schema) IsZero() bool {
	return s.Document == nil
}

func propertyOrder(node *yaml.Node) []string {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "properties" {
			continue
		}
		props := node.Content[i+1]
		if props.Kind == yaml.AliasNode && props.Alias != nil {
			props = props.Alias
		}
		if props.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(props.Content)/2)
		for j := 0; j+1 < len(props.Content); j += 2 {
			order = append(order, props.Content[j].Value)
		}
		return order
	}
	return nil
}
