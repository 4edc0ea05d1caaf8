package walker

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Action controls traversal after a visitor returns.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// SkipChildren skips the node's children but continues with its siblings.
	SkipChildren
	// Stop ends the walk.
	Stop
)

// WalkContext describes the position of the node being visited.
type WalkContext struct {
	// Key is the mapping key under which the node sits ("" for the root
	// and for sequence elements).
	Key string

	// Depth is the nesting depth, 0 for the root.
	Depth int

	segments []string
}

// JSONPath returns the JSON path of the current node, e.g. "$.paths['/pets'].get".
func (wc *WalkContext) JSONPath() string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range wc.segments {
		b.WriteString(seg)
	}
	return b.String()
}

// Visitor is called for every node in pre-order.
type Visitor func(wc *WalkContext, node *yaml.Node) Action

// Walk visits node and all of its descendants in document order.
// A nil node is a no-op.
func Walk(node *yaml.Node, visit Visitor) {
	if node == nil || visit == nil {
		return
	}
	wc := &WalkContext{}
	walkNode(wc, node, visit)
}

func walkNode(wc *WalkContext, node *yaml.Node, visit Visitor) bool {
	switch visit(wc, node) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}

	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if !walkNode(wc, child, visit) {
				return false
			}
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if !descend(wc, key, childSegment(key), node.Content[i+1], visit) {
				return false
			}
		}

	case yaml.SequenceNode:
		for i, child := range node.Content {
			if !descend(wc, "", "["+strconv.Itoa(i)+"]", child, visit) {
				return false
			}
		}
	}
	return true
}

func descend(wc *WalkContext, key, segment string, child *yaml.Node, visit Visitor) bool {
	parentKey := wc.Key
	wc.Key = key
	wc.Depth++
	wc.segments = append(wc.segments, segment)

	ok := walkNode(wc, child, visit)

	wc.segments = wc.segments[:len(wc.segments)-1]
	wc.Depth--
	wc.Key = parentKey
	return ok
}

// childSegment renders a mapping key as a JSON path segment, using bracket
// notation for keys that are not plain identifiers.
func childSegment(key string) string {
	if key == "" || key[0] >= '0' && key[0] <= '9' {
		return "['" + key + "']"
	}
	for _, r := range key {
		if !(r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "['" + strings.ReplaceAll(key, "'", "\\'") + "']"
		}
	}
	return "." + key
}
