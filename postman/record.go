package postman

import (
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/erraggy/apitestgen/internal/naming"
	"github.com/erraggy/apitestgen/oaserrors"
)

// TestsRoot is the directory generated test files are placed under.
const TestsRoot = "src/tests"

// Record is one request leaf of a collection.
type Record struct {
	// Service is the service the request belongs to; empty until tagged.
	Service string `json:"service"`
	// FilePath is the synthesized test file path (without extension).
	FilePath string `json:"file_path"`
	// Path is the request URL, possibly with a query string.
	Path string `json:"path"`
	// Verb is the HTTP method as written in the collection.
	Verb string `json:"verb"`
	// Body is the parsed JSON request body, empty when absent or malformed.
	Body map[string]any `json:"body"`
	// Prerequest holds the pre-request script lines.
	Prerequest []string `json:"prerequest"`
	// Script holds the test script lines.
	Script []string `json:"script"`
	// Name is the camelCased request name.
	Name string `json:"name"`
}

// BasePath returns the record path without its query string.
func (r Record) BasePath() string {
	base, _, _ := strings.Cut(r.Path, "?")
	return base
}

// Query returns the query string of the record path, or "".
func (r Record) Query() string {
	_, query, _ := strings.Cut(r.Path, "?")
	return query
}

// IsCollection reports whether data is a Postman collection, identified by
// a non-null info._postman_id field.
func IsCollection(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}
	id := gjson.GetBytes(data, "info._postman_id")
	return id.Exists() && id.Type != gjson.Null
}

// ExtractRequests decodes a collection and extracts its request records.
func ExtractRequests(data []byte) ([]Record, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &oaserrors.ParseError{Message: "failed to decode Postman collection", Cause: err}
	}
	return ExtractRequestsFromValue(v), nil
}

// ExtractRequestsFromValue extracts request records from a decoded
// collection (maps, slices and scalars as produced by json.Unmarshal).
func ExtractRequestsFromValue(v any) []Record {
	x := &extractor{seen: make(map[string]bool)}
	x.walk(v, "")
	return x.records
}

type extractor struct {
	records []Record
	seen    map[string]bool
}

func (x *extractor) walk(v any, folder string) {
	switch node := v.(type) {
	case map[string]any:
		if items, ok := node["item"].([]any); ok {
			if name, ok := node["name"].(string); ok {
				folder = folder + "/" + naming.ToCamelCase(name)
			}
			for _, item := range items {
				x.walk(item, folder)
			}
			return
		}
		if isRequestLeaf(node) {
			rec := extractRecord(node, folder)
			if !x.seen[rec.Name] {
				x.seen[rec.Name] = true
				x.records = append(x.records, rec)
			}
			return
		}
		for _, key := range sortedKeys(node) {
			x.walk(node[key], folder)
		}

	case []any:
		for _, item := range node {
			x.walk(item, folder)
		}
	}
}

func isRequestLeaf(node map[string]any) bool {
	if _, ok := node["request"]; ok {
		return true
	}
	events, ok := node["event"].([]any)
	if !ok {
		return false
	}
	for _, ev := range events {
		if m, ok := ev.(map[string]any); ok {
			if _, ok := m["request"]; ok {
				return true
			}
		}
	}
	return false
}

func extractRecord(node map[string]any, folder string) Record {
	req, _ := node["request"].(map[string]any)

	rec := Record{
		Verb: stringField(req, "method"),
		Body: parseBody(req),
		Name: naming.ToCamelCase(stringField(node, "name")),
	}

	switch u := req["url"].(type) {
	case string:
		rec.Path = u
	case map[string]any:
		rec.Path = stringField(u, "raw")
	}

	events, _ := node["event"].([]any)
	for _, ev := range events {
		m, ok := ev.(map[string]any)
		if !ok {
			continue
		}
		script, _ := m["script"].(map[string]any)
		switch stringField(m, "listen") {
		case "prerequest":
			rec.Prerequest = stringList(script["exec"])
		case "test":
			rec.Script = stringList(script["exec"])
		}
	}

	rec.FilePath = path.Join(TestsRoot, folder, rec.Name)
	return rec
}

// parseBody decodes request.body.raw as a JSON object. Line breaks are
// removed first; anything that is not a JSON object yields an empty body.
func parseBody(req map[string]any) map[string]any {
	body, _ := req["body"].(map[string]any)
	raw := strings.NewReplacer("\r", "", "\n", "").Replace(stringField(body, "raw"))
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
		return map[string]any{}
	}
	return parsed
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// stringList accepts a list of strings or a single string.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, line := range t {
			if s, ok := line.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
