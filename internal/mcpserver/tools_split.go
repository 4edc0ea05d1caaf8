package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/processor"
	"github.com/erraggy/apitestgen/source"
)

type splitInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI/Swagger definition to split"`
	Endpoints   []string  `json:"endpoints,omitempty"    jsonschema:"Only include units whose normalized path starts with one of these prefixes"`
	Type        string    `json:"type,omitempty"         jsonschema:"Filter by unit type: path or verb"`
	IncludeYAML bool      `json:"include_yaml,omitempty" jsonschema:"Include each unit's YAML fragment"`
	GroupBy     string    `json:"group_by,omitempty"     jsonschema:"Group results and return counts instead of individual units. Values: root, type"`
	Limit       int       `json:"limit,omitempty"        jsonschema:"Maximum number of units to return (default 100)"`
	Offset      int       `json:"offset,omitempty"       jsonschema:"Skip the first N units (for pagination)"`
}

type unitSummary struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	Verb     string `json:"verb,omitempty"`
	RootPath string `json:"root_path,omitempty"`
	YAML     string `json:"yaml,omitempty"`
}

type splitOutput struct {
	BaseURL   string        `json:"base_url,omitempty"`
	Total     int           `json:"total"`
	Matched   int           `json:"matched"`
	Returned  int           `json:"returned"`
	PathUnits int           `json:"path_units"`
	VerbUnits int           `json:"verb_units"`
	Units     []unitSummary `json:"units,omitempty"`
	Groups    []groupCount  `json:"groups,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
}

func handleSplit(ctx context.Context, _ *mcp.CallToolRequest, input splitInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.IncludeYAML, []string{"root", "type"}); err != nil {
		return errResult(err), nil, nil
	}
	kind := definition.Kind(strings.ToLower(input.Type))
	if kind != "" && kind != definition.KindPath && kind != definition.KindVerb {
		return errResult(fmt.Errorf("invalid type %q; valid values: path, verb", input.Type)), nil, nil
	}

	resolved, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	if resolved.Kind != source.KindSwagger {
		return errResult(fmt.Errorf("split requires an OpenAPI/Swagger definition, got %s", resolved.Kind)), nil, nil
	}
	def := withEndpoints(resolved, input.Endpoints)

	units := selectByKind(def, kind)
	output := splitOutput{
		BaseURL:   def.BaseURL,
		Total:     len(def.Units),
		Matched:   len(units),
		PathUnits: len(def.Paths()),
		VerbUnits: len(def.Verbs()),
		Warnings:  def.Warnings,
	}

	if input.GroupBy != "" {
		groups := groupAndSort(units, func(u definition.Unit) []string {
			if strings.EqualFold(input.GroupBy, "type") {
				return []string{string(u.Kind)}
			}
			return []string{definition.RootPath(u.Path)}
		})
		output.Groups = paginate(groups, input.Offset, input.Limit)
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	paged := paginate(units, input.Offset, input.Limit)
	output.Returned = len(paged)
	output.Units = makeSlice[unitSummary](len(paged))
	for _, u := range paged {
		s := unitSummary{Type: string(u.Kind), Path: u.Path, Verb: u.Verb, RootPath: u.RootPath}
		if input.IncludeYAML {
			s.YAML = u.Fragment
		}
		output.Units = append(output.Units, s)
	}
	return nil, output, nil
}

func selectByKind(def *processor.Definition, kind definition.Kind) []definition.Unit {
	switch kind {
	case definition.KindPath:
		return def.Paths()
	case definition.KindVerb:
		return def.Verbs()
	default:
		return def.Filtered()
	}
}
