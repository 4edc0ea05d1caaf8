package walker

import (
	"slices"

	"go.yaml.in/yaml/v4"
)

// RefKey is the mapping key that marks a JSON Reference.
const RefKey = "$ref"

// RefSet is an unordered set of reference strings.
type RefSet map[string]struct{}

// Add inserts ref into the set.
func (s RefSet) Add(ref string) {
	s[ref] = struct{}{}
}

// Has reports whether ref is in the set.
func (s RefSet) Has(ref string) bool {
	_, ok := s[ref]
	return ok
}

// Sorted returns the set members in lexical order.
func (s RefSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ref := range s {
		out = append(out, ref)
	}
	slices.Sort(out)
	return out
}

// RefInfo describes one $ref occurrence.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/components/schemas/User")
	Ref string

	// SourcePath is the JSON path of the object holding the $ref
	SourcePath string
}

// CollectRefs returns every string value stored under a "$ref" key anywhere
// in node. Non-string $ref values are ignored.
func CollectRefs(node *yaml.Node) RefSet {
	refs := make(RefSet)
	Walk(node, func(wc *WalkContext, n *yaml.Node) Action {
		if ref, ok := refValue(wc, n); ok {
			refs.Add(ref)
		}
		return Continue
	})
	return refs
}

// CollectRefInfos returns every $ref occurrence in document order, including
// duplicates, with the JSON path of the referencing object.
func CollectRefInfos(node *yaml.Node) []RefInfo {
	var infos []RefInfo
	Walk(node, func(wc *WalkContext, n *yaml.Node) Action {
		if ref, ok := refValue(wc, n); ok {
			path := wc.JSONPath()
			infos = append(infos, RefInfo{
				Ref:        ref,
				SourcePath: path[:len(path)-len(childSegment(RefKey))],
			})
		}
		return Continue
	})
	return infos
}

func refValue(wc *WalkContext, n *yaml.Node) (string, bool) {
	if wc.Key != RefKey || n.Kind != yaml.ScalarNode {
		return "", false
	}
	if n.Tag != "" && n.Tag != "!!str" {
		return "", false
	}
	return n.Value, true
}
