// Package commands provides CLI command handlers for apitestgen.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen"
	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/internal/cliutil"
	"github.com/erraggy/apitestgen/processor"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalStructured renders data as indented JSON or as YAML. YAML is
// derived from the JSON form so both formats share field names and order.
func MarshalStructured(data any, format string) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	switch format {
	case FormatJSON:
		return out, nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(out, &node); err != nil {
			return nil, fmt.Errorf("marshaling to %s: %w", format, err)
		}
		blockStyle(&node)
		return yaml.Marshal(&node)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
}

// blockStyle drops the flow and quoting styles carried over from JSON.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	out, err := MarshalStructured(data, format)
	if err != nil {
		return err
	}
	cliutil.Writef(w, "%s\n", strings.TrimRight(string(out), "\n"))
	return nil
}

// FormatSpecPath returns a display-friendly path for the input.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// NewLogger returns a text slog logger on stderr at debug level when
// verbose is set, or nil so callers fall back to a no-op logger.
func NewLogger(verbose bool) apitestgen.Logger {
	if !verbose {
		return nil
	}
	return apitestgen.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// LoadDefinition processes specPath, reading stdin when it is StdinFilePath.
func LoadDefinition(ctx context.Context, specPath string, opts ...processor.Option) (*processor.Definition, error) {
	if specPath == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return processor.ProcessBytes(specPath, data, opts...)
	}
	return processor.Process(ctx, specPath, opts...)
}

// OutputHeader writes the common input header to stderr.
func OutputHeader(title, specPath string, def *processor.Definition) {
	cliutil.Heading(os.Stderr, title)
	cliutil.Field(os.Stderr, "Version", apitestgen.Version())
	cliutil.Field(os.Stderr, "Input", FormatSpecPath(specPath))
	cliutil.Field(os.Stderr, "Kind", string(def.Kind))
	cliutil.Field(os.Stderr, "Base URL", def.BaseURL)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

// UnitFileName returns the relative output file for a unit's standalone
// definition, e.g. "paths/pets.yaml" or "verbs/pets_id.get.yaml".
func UnitFileName(u definition.Unit) string {
	name := strings.Join(definition.Segments(u.Path), "_")
	name = strings.NewReplacer("{", "", "}", "", ":", "").Replace(name)
	if name == "" {
		name = "root"
	}
	if u.IsVerb() {
		return "verbs/" + name + "." + strings.ToLower(u.Verb) + ".yaml"
	}
	return "paths/" + name + ".yaml"
}
