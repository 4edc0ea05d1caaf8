package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen/assembler"
	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/source"
)

type assembleInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI/Swagger definition to reassemble from"`
	Path   string    `json:"path"             jsonschema:"Path of the unit, e.g. /pets/{id}; without a verb the merged unit of its root path is built"`
	Verb   string    `json:"verb,omitempty"   jsonschema:"HTTP method of the verb unit; omit for the path unit"`
	Filter *bool     `json:"filter,omitempty" jsonschema:"Prune unused schemas (default from APITESTGEN_FILTER_SCHEMAS)"`
}

type assembledUnit struct {
	Type       string `json:"type"`
	Path       string `json:"path"`
	Verb       string `json:"verb,omitempty"`
	Definition string `json:"definition"`
}

type assembleOutput struct {
	Filtered bool            `json:"filtered"`
	Units    []assembledUnit `json:"units"`
}

func handleAssemble(ctx context.Context, _ *mcp.CallToolRequest, input assembleInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return errResult(fmt.Errorf("path is required")), nil, nil
	}

	def, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	if def.Kind != source.KindSwagger {
		return errResult(fmt.Errorf("assemble requires an OpenAPI/Swagger definition, got %s", def.Kind)), nil, nil
	}

	path := definition.NormalizePath(input.Path)
	verb := strings.ToUpper(input.Verb)
	// Merged path units are keyed by root, so a sub-path selects its root's unit.
	if verb == "" {
		path = definition.RootPath(path)
	}
	var matched []definition.Unit
	for _, u := range def.Units {
		if u.Path != path {
			continue
		}
		if (verb == "" && u.IsPath()) || (verb != "" && u.IsVerb() && u.Verb == verb) {
			matched = append(matched, u)
		}
	}
	if len(matched) == 0 {
		if verb != "" {
			return errResult(fmt.Errorf("no %s unit at path %q", verb, path)), nil, nil
		}
		return errResult(fmt.Errorf("no path unit at path %q", path)), nil, nil
	}

	filtered := cfg.FilterSchemas
	if input.Filter != nil {
		filtered = *input.Filter
	}

	asm, err := assembler.New(def.Base)
	if err != nil {
		return errResult(err), nil, nil
	}
	output := assembleOutput{Filtered: filtered, Units: make([]assembledUnit, 0, len(matched))}
	for _, u := range matched {
		text, err := asm.BuildUnit(u, filtered)
		if err != nil {
			return errResult(err), nil, nil
		}
		output.Units = append(output.Units, assembledUnit{
			Type:       string(u.Kind),
			Path:       u.Path,
			Verb:       u.Verb,
			Definition: text,
		})
	}
	return nil, output, nil
}
