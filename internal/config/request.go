package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/domain"
	"gopkg.in/yaml.v3"
)

// Request is one calculation: the calculator kind and its input document.
// Input stays a raw node so the engine can decode it into the typed input.
type Request struct {
	Kind  domain.Kind `yaml:"kind"`
	Input yaml.Node   `yaml:"input"`
}

// LoadRequest reads a request file
func (ip *InputParser) LoadRequest(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRequest(data)
}

// ParseRequest decodes a request and normalizes its kind.
func (ip *InputParser) ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if req.Kind == "" {
		return nil, fmt.Errorf("request validation failed: %w", domain.Invalid("kind", "is required"))
	}
	kind, err := domain.ParseKind(string(req.Kind))
	if err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	req.Kind = kind
	if req.Input.Kind == yaml.ScalarNode && req.Input.Tag == "!!null" {
		req.Input = yaml.Node{}
	}
	if req.Input.Kind != 0 && req.Input.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("request validation failed: %w", domain.Invalid("input", "must be a mapping"))
	}
	return &req, nil
}

// ParseInput wraps a bare input document, such as an HTTP request body, in a
// Request for kind. JSON bodies parse as YAML. An empty body is allowed.
func (ip *InputParser) ParseInput(kind domain.Kind, data []byte) (*Request, error) {
	req := &Request{Kind: kind}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if len(doc.Content) == 0 {
		return req, nil
	}
	node := doc.Content[0]
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return req, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("request validation failed: %w", domain.Invalid("input", "must be a mapping"))
	}
	req.Input = *node
	return req, nil
}

// Decoder overlays the request input and then the assignments on whatever
// the engine passes in. Either may be empty.
func (r *Request) Decoder(assignments map[string]string) calculation.Decoder {
	return func(v interface{}) error {
		if r != nil && r.Input.Kind != 0 {
			if err := r.Input.Decode(v); err != nil {
				return err
			}
		}
		if len(assignments) > 0 {
			return calculation.BuildInputNode(assignments).Decode(v)
		}
		return nil
	}
}

// ParseAssignments parses --set style "field.path=value" pairs.
func ParseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", pair)
		}
		if strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") || strings.Contains(key, "..") {
			return nil, fmt.Errorf("invalid assignment %q: malformed field path", pair)
		}
		values[key] = strings.TrimSpace(value)
	}
	return values, nil
}
