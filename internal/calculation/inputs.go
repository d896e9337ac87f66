package calculation

import (
	"strings"

	"github.com/rgehrsitz/finwise/internal/domain"
	"gopkg.in/yaml.v3"
)

// BuildInputNode turns dotted field assignments such as
// "compute.instances=2" into a YAML mapping node. Scalars are left untagged
// so decoding resolves them as numbers, booleans or strings.
func BuildInputNode(values map[string]string) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range domain.SortedKeys(values) {
		parts := strings.Split(key, ".")
		parent := root
		for _, part := range parts[:len(parts)-1] {
			parent = childMapping(parent, part)
		}
		setScalar(parent, parts[len(parts)-1], values[key])
	}
	return root
}

func childMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key {
			child := parent.Content[i+1]
			if child.Kind != yaml.MappingNode {
				child.Kind = yaml.MappingNode
				child.Value = ""
				child.Content = nil
			}
			return child
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}

func setScalar(parent *yaml.Node, key, value string) {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key {
			parent.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
			return
		}
	}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// DefaultValues flattens slider defaults into assignments for BuildInputNode.
func DefaultValues(ranges []FieldRange) map[string]string {
	values := make(map[string]string, len(ranges))
	for _, r := range ranges {
		if r.IsChoice() {
			values[r.Field] = r.DefaultOption
			continue
		}
		values[r.Field] = r.Default.String()
	}
	return values
}
