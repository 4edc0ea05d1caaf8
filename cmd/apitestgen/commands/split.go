package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/internal/cliutil"
	"github.com/erraggy/apitestgen/internal/fileutil"
	"github.com/erraggy/apitestgen/processor"
	"github.com/erraggy/apitestgen/source"
)

// SplitFlags contains flags for the split command
type SplitFlags struct {
	Output    string
	Format    string
	Type      string
	Endpoints stringList
	Quiet     bool
	Verbose   bool
}

// SetupSplitFlags creates and configures a FlagSet for the split command.
// Returns the FlagSet and a SplitFlags struct with bound flag variables.
func SetupSplitFlags() (*flag.FlagSet, *SplitFlags) {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	flags := &SplitFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for base.yaml and units.json (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output directory for base.yaml and units.json (default: stdout)")
	fs.StringVar(&flags.Format, "format", FormatText, "stdout format: text, json, or yaml")
	fs.StringVar(&flags.Type, "type", "", "only list units of this type: path or verb")
	fs.Var(&flags.Endpoints, "endpoint", "only include units under this path prefix (repeatable, comma-separated)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose: log pipeline stages to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apitestgen split [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Split an OpenAPI/Swagger definition into path units and verb units.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nUnits:\n")
		cliutil.Writef(fs.Output(), "  path  one per normalized root path; paths sharing a root are merged\n")
		cliutil.Writef(fs.Output(), "  verb  one per HTTP operation, tagged with its root path\n")
		cliutil.Writef(fs.Output(), "\nPaths are normalized by dropping a leading 'api' segment and a version\n")
		cliutil.Writef(fs.Output(), "segment such as 'v1', so /api/v1/pets becomes /pets.\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apitestgen split openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apitestgen split --type verb --endpoint /pets openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apitestgen split -o out/ https://example.com/swagger.json\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | apitestgen split --format json -\n")
	}

	return fs, flags
}

// splitReport is the structured form of a split.
type splitReport struct {
	Input     string            `json:"input"`
	BaseURL   string            `json:"base_url,omitempty"`
	PathUnits int               `json:"path_units"`
	VerbUnits int               `json:"verb_units"`
	Units     []definition.Unit `json:"units"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// HandleSplit executes the split command
func HandleSplit(args []string) error {
	fs, flags := SetupSplitFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("split command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kind := definition.Kind(strings.ToLower(flags.Type))
	if kind != "" && kind != definition.KindPath && kind != definition.KindVerb {
		return fmt.Errorf("invalid type '%s'. Valid types: path, verb", flags.Type)
	}

	specPath := fs.Arg(0)
	def, err := LoadDefinition(context.Background(), specPath,
		processor.WithEndpoints(flags.Endpoints...),
		processor.WithLogger(NewLogger(flags.Verbose)),
	)
	if err != nil {
		return fmt.Errorf("processing %s: %w", FormatSpecPath(specPath), err)
	}
	if def.Kind != source.KindSwagger {
		return fmt.Errorf("split requires an OpenAPI/Swagger definition, got %s; use 'apitestgen postman' for collections", def.Kind)
	}

	units := def.Filtered()
	switch kind {
	case definition.KindPath:
		units = def.Paths()
	case definition.KindVerb:
		units = def.Verbs()
	}

	if !flags.Quiet {
		OutputHeader("API Definition Splitter", specPath, def)
		cliutil.Writef(os.Stderr, "Path units: %d\n", len(def.Paths()))
		cliutil.Writef(os.Stderr, "Verb units: %d\n", len(def.Verbs()))
		for _, w := range def.Warnings {
			cliutil.Writef(os.Stderr, "Warning: %s\n", w)
		}
		cliutil.Writef(os.Stderr, "\n")
	}

	report := splitReport{
		Input:     FormatSpecPath(specPath),
		BaseURL:   def.BaseURL,
		PathUnits: len(def.Paths()),
		VerbUnits: len(def.Verbs()),
		Units:     units,
		Warnings:  def.Warnings,
	}

	if flags.Output != "" {
		if err := writeSplit(flags.Output, def.Base, units); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, report, flags.Format)
	}
	for _, u := range units {
		cliutil.Writef(os.Stdout, "%s\n", u)
	}
	return nil
}

// writeSplit writes the base definition and the unit list to dir.
func writeSplit(dir, base string, units []definition.Unit) error {
	if err := fileutil.WriteOwnerFile(filepath.Join(dir, "base.yaml"), []byte(base)); err != nil {
		return err
	}
	if units == nil {
		units = []definition.Unit{}
	}
	data, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling units: %w", err)
	}
	return fileutil.WriteOwnerFile(filepath.Join(dir, "units.json"), data)
}
