package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen/source"
)

type detectInput struct {
	Spec specInput `json:"spec" jsonschema:"The definition or collection to inspect"`
}

type detectOutput struct {
	Kind      string   `json:"kind"`
	BaseURL   string   `json:"base_url,omitempty"`
	PathUnits int      `json:"path_units,omitempty"`
	VerbUnits int      `json:"verb_units,omitempty"`
	Records   int      `json:"records,omitempty"`
	Services  int      `json:"services,omitempty"`
	EnvVars   []string `json:"env_vars,omitempty"`
	EnvFile   string   `json:"env_file,omitempty"`
}

func handleDetect(ctx context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, any, error) {
	def, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}

	output := detectOutput{Kind: string(def.Kind), BaseURL: def.BaseURL}
	switch def.Kind {
	case source.KindSwagger:
		output.PathUnits = len(def.Paths())
		output.VerbUnits = len(def.Verbs())
	case source.KindPostman:
		output.Records = len(def.Records)
		output.Services = len(def.Services)
		output.EnvVars = def.EnvVars
	}
	env, err := def.EnvFile()
	if err != nil {
		return errResult(err), nil, nil
	}
	output.EnvFile = env
	return nil, output, nil
}
