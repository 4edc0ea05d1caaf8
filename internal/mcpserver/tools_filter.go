package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen/filter"
	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/source"
)

type filterSchemasInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The OpenAPI/Swagger definition to filter"`
	IncludeDocument bool      `json:"include_document,omitempty" jsonschema:"Include the filtered document as YAML"`
}

type filterSchemasOutput struct {
	Dialect  string   `json:"dialect,omitempty"`
	Kept     []string `json:"kept,omitempty"`
	Removed  []string `json:"removed,omitempty"`
	Dangling []string `json:"dangling,omitempty"`
	Document string   `json:"document,omitempty"`
}

func handleFilterSchemas(ctx context.Context, _ *mcp.CallToolRequest, input filterSchemasInput) (*mcp.CallToolResult, any, error) {
	def, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	if def.Kind != source.KindSwagger || def.Document == nil {
		return errResult(fmt.Errorf("filter_schemas requires an OpenAPI/Swagger definition, got %s", def.Kind)), nil, nil
	}

	result := filter.Filter(def.Document)
	output := filterSchemasOutput{
		Dialect:  result.Dialect,
		Kept:     result.Kept,
		Removed:  result.Removed,
		Dangling: result.Dangling,
	}
	if input.IncludeDocument {
		text, err := docutil.Encode(result.Document)
		if err != nil {
			return errResult(err), nil, nil
		}
		output.Document = text
	}
	return nil, output, nil
}
