package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/apitestgen/filter"
	"github.com/erraggy/apitestgen/internal/cliutil"
	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/internal/fileutil"
	"github.com/erraggy/apitestgen/processor"
	"github.com/erraggy/apitestgen/source"
)

// FilterFlags contains flags for the filter command
type FilterFlags struct {
	Output  string
	Quiet   bool
	Verbose bool
}

// SetupFilterFlags creates and configures a FlagSet for the filter command.
// Returns the FlagSet and a FilterFlags struct with bound flag variables.
func SetupFilterFlags() (*flag.FlagSet, *FilterFlags) {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	flags := &FilterFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose: log pipeline stages to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apitestgen filter [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Remove schemas that are not reachable from the definition's paths.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nDialects:\n")
		cliutil.Writef(fs.Output(), "  OpenAPI 3  components.schemas, refs of the form #/components/schemas/<Name>\n")
		cliutil.Writef(fs.Output(), "  Swagger 2  definitions, refs of the form #/definitions/<Name>\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apitestgen filter openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apitestgen filter -o trimmed.yaml swagger.json\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | apitestgen filter -q - > trimmed.yaml\n")
	}

	return fs, flags
}

// HandleFilter executes the filter command
func HandleFilter(args []string) error {
	fs, flags := SetupFilterFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("filter command requires exactly one file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)
	def, err := LoadDefinition(context.Background(), specPath, processor.WithLogger(NewLogger(flags.Verbose)))
	if err != nil {
		return fmt.Errorf("processing %s: %w", FormatSpecPath(specPath), err)
	}
	if def.Kind != source.KindSwagger || def.Document == nil {
		return fmt.Errorf("filter requires an OpenAPI/Swagger definition, got %s", def.Kind)
	}

	result := filter.Filter(def.Document)

	if !flags.Quiet {
		OutputHeader("Schema Filter", specPath, def)
		if result.Dialect == "" {
			cliutil.Writef(os.Stderr, "No schema container found; document unchanged\n\n")
		} else {
			cliutil.Writef(os.Stderr, "Dialect: %s\n", result.Dialect)
			cliutil.Writef(os.Stderr, "Kept (%d): %s\n", len(result.Kept), strings.Join(result.Kept, ", "))
			cliutil.Writef(os.Stderr, "Removed (%d): %s\n", len(result.Removed), strings.Join(result.Removed, ", "))
			for _, ref := range result.Dangling {
				cliutil.Writef(os.Stderr, "Warning: dangling reference %s\n", ref)
			}
			cliutil.Writef(os.Stderr, "\n")
		}
	}

	text, err := docutil.Encode(result.Document)
	if err != nil {
		return fmt.Errorf("encoding filtered document: %w", err)
	}

	if flags.Output != "" {
		if err := fileutil.WriteOwnerFile(flags.Output, []byte(text)); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}
	cliutil.Writef(os.Stdout, "%s", text)
	return nil
}
