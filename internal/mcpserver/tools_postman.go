package mcpserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen/postman"
	"github.com/erraggy/apitestgen/source"
)

type postmanExtractInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The Postman collection to extract from"`
	Service string    `json:"service,omitempty" jsonschema:"Only include verbs and records of this service"`
	Records bool      `json:"records,omitempty" jsonschema:"Return individual request records instead of aggregated verb shapes"`
	Limit   int       `json:"limit,omitempty"   jsonschema:"Maximum number of verbs or records to return (default 100)"`
	Offset  int       `json:"offset,omitempty"  jsonschema:"Skip the first N verbs or records (for pagination)"`
}

type serviceSummary struct {
	Name  string `json:"name"`
	Verbs int    `json:"verbs"`
}

type recordSummary struct {
	Service  string `json:"service"`
	Name     string `json:"name"`
	Verb     string `json:"verb"`
	Path     string `json:"path"`
	FilePath string `json:"file_path"`
}

type postmanExtractOutput struct {
	RecordCount int                `json:"record_count"`
	EnvVars     []string           `json:"env_vars,omitempty"`
	Services    []serviceSummary   `json:"services,omitempty"`
	Matched     int                `json:"matched"`
	Returned    int                `json:"returned"`
	Verbs       []postman.VerbInfo `json:"verbs,omitempty"`
	Records     []recordSummary    `json:"records,omitempty"`
}

func handlePostmanExtract(ctx context.Context, _ *mcp.CallToolRequest, input postmanExtractInput) (*mcp.CallToolResult, any, error) {
	def, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	if def.Kind != source.KindPostman {
		return errResult(fmt.Errorf("postman_extract requires a Postman collection, got %s", def.Kind)), nil, nil
	}
	if input.Service != "" {
		if _, ok := def.Services[input.Service]; !ok {
			return errResult(fmt.Errorf("unknown service %q", input.Service)), nil, nil
		}
	}

	names := make([]string, 0, len(def.Services))
	for name := range def.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	output := postmanExtractOutput{
		RecordCount: len(def.Records),
		EnvVars:     def.EnvVars,
		Services:    makeSlice[serviceSummary](len(names)),
	}
	for _, name := range names {
		output.Services = append(output.Services, serviceSummary{Name: name, Verbs: len(def.Services[name])})
	}

	if input.Records {
		var records []postman.Record
		for _, r := range def.Records {
			if input.Service == "" || r.Service == input.Service {
				records = append(records, r)
			}
		}
		paged := paginate(records, input.Offset, input.Limit)
		output.Matched = len(records)
		output.Returned = len(paged)
		output.Records = makeSlice[recordSummary](len(paged))
		for _, r := range paged {
			output.Records = append(output.Records, recordSummary{
				Service:  r.Service,
				Name:     r.Name,
				Verb:     r.Verb,
				Path:     r.Path,
				FilePath: r.FilePath,
			})
		}
		return nil, output, nil
	}

	var verbs []postman.VerbInfo
	for _, name := range names {
		if input.Service == "" || name == input.Service {
			verbs = append(verbs, def.Services[name]...)
		}
	}
	paged := paginate(verbs, input.Offset, input.Limit)
	output.Matched = len(verbs)
	output.Returned = len(paged)
	output.Verbs = paged
	return nil, output, nil
}
