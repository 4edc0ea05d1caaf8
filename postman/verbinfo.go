package postman

import (
	"net/url"
	"slices"
	"strings"
)

// Attribute types inferred from observed values.
const (
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// objectSuffix is appended to the key of nested objects and arrays.
const objectSuffix = "Object"

// Attributes maps a body attribute name to its type, or to nested
// Attributes for "<key>Object" entries.
type Attributes map[string]any

// VerbInfo is the aggregated request shape of one (path, verb) pair.
type VerbInfo struct {
	// Path is the request path without query string.
	Path string `json:"path"`
	// Verb is the HTTP method.
	Verb string `json:"verb"`
	// QueryParams maps a query parameter name to "number" or "string".
	QueryParams map[string]string `json:"query_params"`
	// BodyAttributes holds the inferred body shape.
	BodyAttributes Attributes `json:"body_attributes"`
	// RootPath is the service the pair belongs to; empty until tagged.
	RootPath string `json:"root_path"`
}

// ExtractVerbPathInfo aggregates records into one VerbInfo per distinct
// (base path, verb) pair. Output is ordered by first appearance of the base
// path, then of the verb within it.
func ExtractVerbPathInfo(records []Record) []VerbInfo {
	type key struct{ path, verb string }

	var order []key
	index := make(map[key]int)
	infos := make([]VerbInfo, 0)

	for _, r := range records {
		k := key{path: r.BasePath(), verb: r.Verb}
		i, ok := index[k]
		if !ok {
			i = len(infos)
			index[k] = i
			order = append(order, k)
			infos = append(infos, VerbInfo{
				Path:           k.path,
				Verb:           k.verb,
				QueryParams:    map[string]string{},
				BodyAttributes: Attributes{},
			})
		}
		accumulateQuery(infos[i].QueryParams, r.Query())
		accumulateBody(infos[i].BodyAttributes, r.Body)
	}

	// Group pairs of the same base path together.
	pathRank := make(map[string]int)
	for _, k := range order {
		if _, ok := pathRank[k.path]; !ok {
			pathRank[k.path] = len(pathRank)
		}
	}
	slices.SortStableFunc(infos, func(a, b VerbInfo) int {
		return pathRank[a.Path] - pathRank[b.Path]
	})
	return infos
}

// accumulateQuery merges the parameters of a raw query string into params.
func accumulateQuery(params map[string]string, query string) {
	if query == "" {
		return
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name = unescape(name)
		if name == "" {
			continue
		}
		widen(params, name, scalarType(unescape(value)))
	}
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// widen records typ for name unless a wider type is already present.
// "string" is wider than every other type.
func widen(params map[string]string, name, typ string) {
	prev, ok := params[name]
	if !ok || (prev != typ && typ == TypeString) {
		params[name] = typ
	}
}

// accumulateBody merges the attributes of one body into attrs.
func accumulateBody(attrs Attributes, body map[string]any) {
	for _, k := range sortedKeys(body) {
		switch v := body[k].(type) {
		case string:
			widenAttr(attrs, k, scalarType(v))
		case float64, int, int64, uint64:
			widenAttr(attrs, k, TypeNumber)
		case bool:
			widenAttr(attrs, k, TypeBoolean)
		case map[string]any:
			nested, ok := attrs[k+objectSuffix].(Attributes)
			if !ok {
				if _, taken := attrs[k+objectSuffix]; taken {
					continue
				}
				nested = Attributes{}
				attrs[k+objectSuffix] = nested
			}
			accumulateBody(nested, v)
		case []any:
			if _, taken := attrs[k+objectSuffix]; !taken {
				attrs[k+objectSuffix] = TypeArray
			}
		}
	}
}

func widenAttr(attrs Attributes, name, typ string) {
	prev, ok := attrs[name].(string)
	if _, exists := attrs[name]; !exists || (ok && prev != typ && typ == TypeString) {
		attrs[name] = typ
	}
}

// scalarType returns "number" for non-empty all-digit strings, else "string".
func scalarType(s string) string {
	if s == "" {
		return TypeString
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return TypeString
		}
	}
	return TypeNumber
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
