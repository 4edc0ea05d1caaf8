package filter

import (
	"net/url"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/walker"
)

// Result describes one filtering pass.
type Result struct {
	// Document is a copy of the input with the schema container replaced by
	// the closure. Every other key is carried through unchanged.
	Document *yaml.Node

	// Dialect is the strategy name, or "" when no strategy applied.
	Dialect string

	// Kept lists the retained schema names in container order.
	Kept []string

	// Removed lists the pruned schema names in container order.
	Removed []string

	// Dangling lists references that matched the prefix but named no schema,
	// sorted.
	Dangling []string
}

// Schemas returns a copy of doc whose schema container holds only the
// schemas reachable from doc's paths. Documents without an "openapi" or
// "swagger" marker, without a paths key, or without a schema container are
// returned as an unchanged copy.
func Schemas(doc *yaml.Node) *yaml.Node {
	return Filter(doc).Document
}

// Filter is Schemas with a report of what was kept and removed.
func Filter(doc *yaml.Node) *Result {
	strategy := DetectStrategy(doc)
	if strategy == nil {
		return &Result{Document: docutil.Clone(doc)}
	}
	return Closure(strategy, doc)
}

// Closure filters doc with the given strategy.
func Closure(strategy Strategy, doc *yaml.Node) *Result {
	out := docutil.Clone(doc)
	result := &Result{Document: out, Dialect: strategy.Name()}

	// No paths key means nothing to filter; an empty paths map prunes all.
	container := strategy.Container(doc)
	if container == nil || docutil.Get(doc, "paths") == nil {
		return result
	}

	prefix := strategy.RefPrefix()
	collected := make(map[string]bool)
	dangling := make(walker.RefSet)

	queue := walker.CollectRefs(docutil.Get(doc, "paths")).Sorted()
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		name := schemaName(ref, prefix)
		if name == "" || collected[name] {
			continue
		}
		body := docutil.Get(container, name)
		if body == nil {
			dangling.Add(ref)
			continue
		}
		collected[name] = true
		queue = append(queue, walker.CollectRefs(body).Sorted()...)
	}

	closure := docutil.NewMapping()
	docutil.Each(container, func(name string, body *yaml.Node) {
		if collected[name] {
			closure.Content = append(closure.Content, docutil.String(name), docutil.Clone(body))
			result.Kept = append(result.Kept, name)
		} else {
			result.Removed = append(result.Removed, name)
		}
	})

	strategy.Replace(out, closure)
	result.Dangling = dangling.Sorted()
	return result
}

// schemaName extracts the schema name addressed by ref, or "" if ref does not
// point into the container. A ref into a schema's interior
// ("#/definitions/Pet/properties/id") names the enclosing schema. JSON
// Pointer escapes and percent-encoding are decoded.
func schemaName(ref, prefix string) string {
	if !strings.HasPrefix(ref, prefix) {
		decoded, err := url.PathUnescape(ref)
		if err != nil || !strings.HasPrefix(decoded, prefix) {
			return ""
		}
		ref = decoded
	}

	name, _, _ := strings.Cut(strings.TrimPrefix(ref, prefix), "/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.ReplaceAll(name, "~1", "/")
	return strings.ReplaceAll(name, "~0", "~")
}
