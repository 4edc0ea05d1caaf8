// Package docutil provides order-preserving helpers over yaml.Node trees.
//
// Definitions are handled as *yaml.Node rather than map[string]any so that
// path, verb and schema order survive a split/merge/reassemble round trip.
// JSON input is decoded through the same YAML parser.
package docutil

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Decode parses YAML or JSON bytes and returns the root content node.
// Aliases are expanded in place so that fragments cut from the tree stay
// self-contained. Empty input decodes to an empty mapping.
func Decode(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewMapping(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return NewMapping(), nil
		}
		root = doc.Content[0]
	}
	return expandAliases(root, make(map[*yaml.Node]bool)), nil
}

// DecodeString is Decode for string input.
func DecodeString(s string) (*yaml.Node, error) {
	return Decode([]byte(s))
}

// Encode serializes a node to YAML text.
func Encode(node *yaml.Node) (string, error) {
	if node == nil {
		node = NewMapping()
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("docutil: failed to marshal node: %w", err)
	}
	return string(data), nil
}

// expandAliases replaces alias nodes with copies of their anchors.
// An alias to one of its own ancestors is left as-is.
func expandAliases(node *yaml.Node, active map[*yaml.Node]bool) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		if active[node.Alias] {
			return node
		}
		return expandAliases(Clone(node.Alias), active)
	}

	active[node] = true
	for i, child := range node.Content {
		node.Content[i] = expandAliases(child, active)
	}
	delete(active, node)
	node.Anchor = ""
	return node
}

// Clone returns a deep copy of node.
func Clone(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	cp := *node
	if node.Content != nil {
		cp.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			cp.Content[i] = Clone(child)
		}
	}
	return &cp
}

// NewMapping returns an empty mapping node.
func NewMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// String returns a string scalar node.
func String(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// IsMapping reports whether node is a non-nil mapping node.
func IsMapping(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.MappingNode
}

// IsSequence reports whether node is a non-nil sequence node.
func IsSequence(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.SequenceNode
}

// Get returns the value stored under key in a mapping node, or nil.
func Get(mapping *yaml.Node, key string) *yaml.Node {
	if !IsMapping(mapping) {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// Has reports whether a mapping node contains key.
func Has(mapping *yaml.Node, key string) bool {
	return Get(mapping, key) != nil
}

// Set stores value under key, replacing an existing entry in place or
// appending a new one at the end.
func Set(mapping *yaml.Node, key string, value *yaml.Node) {
	if !IsMapping(mapping) {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content, String(key), value)
}

// Delete removes key from a mapping node and reports whether it was present.
func Delete(mapping *yaml.Node, key string) bool {
	if !IsMapping(mapping) {
		return false
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return true
		}
	}
	return false
}

// Keys returns the keys of a mapping node in document order.
func Keys(mapping *yaml.Node) []string {
	if !IsMapping(mapping) {
		return nil
	}
	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys
}

// Each calls fn for every key/value pair of a mapping node in document order.
func Each(mapping *yaml.Node, fn func(key string, value *yaml.Node)) {
	if !IsMapping(mapping) {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		fn(mapping.Content[i].Value, mapping.Content[i+1])
	}
}

// Lookup follows a chain of mapping keys and returns the node at the end, or nil.
func Lookup(node *yaml.Node, keys ...string) *yaml.Node {
	for _, key := range keys {
		node = Get(node, key)
		if node == nil {
			return nil
		}
	}
	return node
}

// ScalarValue returns the value of a scalar node, or "" for anything else.
func ScalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// ToValue decodes a node into plain Go values (map[string]any, []any, scalars).
func ToValue(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("docutil: failed to decode node: %w", err)
	}
	return v, nil
}
