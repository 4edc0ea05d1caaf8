package filter

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen/internal/docutil"
)

// Strategy locates the schema container of one definition dialect.
type Strategy interface {
	// Name identifies the dialect ("oas2" or "oas3").
	Name() string

	// RefPrefix is the JSON Reference prefix addressing the container.
	RefPrefix() string

	// Container returns the schema mapping of doc, or nil if absent.
	Container(doc *yaml.Node) *yaml.Node

	// Replace stores schemas as the schema container of doc.
	Replace(doc, schemas *yaml.Node)
}

// OAS3 is the strategy for OpenAPI 3.x documents.
var OAS3 Strategy = oas3Strategy{}

// OAS2 is the strategy for Swagger 2.0 documents.
var OAS2 Strategy = oas2Strategy{}

type oas3Strategy struct{}

func (oas3Strategy) Name() string      { return "oas3" }
func (oas3Strategy) RefPrefix() string { return "#/components/schemas/" }

func (oas3Strategy) Container(doc *yaml.Node) *yaml.Node {
	schemas := docutil.Lookup(doc, "components", "schemas")
	if !docutil.IsMapping(schemas) {
		return nil
	}
	return schemas
}

func (oas3Strategy) Replace(doc, schemas *yaml.Node) {
	components := docutil.Get(doc, "components")
	if !docutil.IsMapping(components) {
		components = docutil.NewMapping()
		docutil.Set(doc, "components", components)
	}
	docutil.Set(components, "schemas", schemas)
}

type oas2Strategy struct{}

func (oas2Strategy) Name() string      { return "oas2" }
func (oas2Strategy) RefPrefix() string { return "#/definitions/" }

func (oas2Strategy) Container(doc *yaml.Node) *yaml.Node {
	definitions := docutil.Get(doc, "definitions")
	if !docutil.IsMapping(definitions) {
		return nil
	}
	return definitions
}

func (oas2Strategy) Replace(doc, schemas *yaml.Node) {
	docutil.Set(doc, "definitions", schemas)
}

// DetectStrategy selects a strategy from the document's version marker:
// "openapi" selects OAS3, "swagger" selects OAS2. It returns nil for
// documents carrying neither.
func DetectStrategy(doc *yaml.Node) Strategy {
	switch {
	case docutil.Has(doc, "openapi"):
		return OAS3
	case docutil.Has(doc, "swagger"):
		return OAS2
	default:
		return nil
	}
}
