package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/apitestgen/internal/cliutil"
	"github.com/erraggy/apitestgen/internal/fileutil"
	"github.com/erraggy/apitestgen/processor"
	"github.com/erraggy/apitestgen/source"
)

// AssembleFlags contains flags for the assemble command
type AssembleFlags struct {
	Output      string
	Endpoints   stringList
	NoFilter    bool
	Concurrency int
	Timeout     time.Duration
	Quiet       bool
	Verbose     bool
}

// SetupAssembleFlags creates and configures a FlagSet for the assemble command.
// Returns the FlagSet and an AssembleFlags struct with bound flag variables.
func SetupAssembleFlags() (*flag.FlagSet, *AssembleFlags) {
	fs := flag.NewFlagSet("assemble", flag.ContinueOnError)
	flags := &AssembleFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory, one file per unit (default: stdout as a YAML stream)")
	fs.StringVar(&flags.Output, "output", "", "output directory, one file per unit (default: stdout as a YAML stream)")
	fs.Var(&flags.Endpoints, "endpoint", "only assemble units under this path prefix (repeatable, comma-separated)")
	fs.BoolVar(&flags.NoFilter, "no-filter", false, "keep every schema instead of pruning unreferenced ones")
	fs.IntVar(&flags.Concurrency, "c", processor.DefaultConcurrency(), "number of units assembled at once")
	fs.IntVar(&flags.Concurrency, "concurrency", processor.DefaultConcurrency(), "number of units assembled at once")
	fs.DurationVar(&flags.Timeout, "timeout", source.DefaultTimeout, "timeout for URL inputs")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose: log pipeline stages to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apitestgen assemble [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Build a standalone definition for every path unit and verb unit.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEach definition is the original document with 'paths' replaced by the\n")
		cliutil.Writef(fs.Output(), "unit's paths and, unless --no-filter is set, schemas pruned to those the\n")
		cliutil.Writef(fs.Output(), "unit references.\n")
		cliutil.Writef(fs.Output(), "\nOutput Layout (-o DIR):\n")
		cliutil.Writef(fs.Output(), "  DIR/paths/<path>.yaml         merged path units\n")
		cliutil.Writef(fs.Output(), "  DIR/verbs/<path>.<verb>.yaml  verb units\n")
		cliutil.Writef(fs.Output(), "  DIR/.env                      BASEURL from the document's server\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apitestgen assemble -o out/ openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apitestgen assemble --endpoint /pets --no-filter openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apitestgen assemble -c 8 --timeout 1m -o out/ https://example.com/swagger.json\n")
	}

	return fs, flags
}

// HandleAssemble executes the assemble command
func HandleAssemble(args []string) error {
	fs, flags := SetupAssembleFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("assemble command requires exactly one file path, URL, or '-' for stdin")
	}

	opts := []processor.Option{
		processor.WithEndpoints(flags.Endpoints...),
		processor.WithFilterSchemas(!flags.NoFilter),
		processor.WithConcurrency(flags.Concurrency),
		processor.WithHTTPTimeout(flags.Timeout),
		processor.WithLogger(NewLogger(flags.Verbose)),
	}

	ctx := context.Background()
	specPath := fs.Arg(0)
	startTime := time.Now()
	def, err := LoadDefinition(ctx, specPath, opts...)
	if err != nil {
		return fmt.Errorf("processing %s: %w", FormatSpecPath(specPath), err)
	}
	if def.Kind != source.KindSwagger {
		return fmt.Errorf("assemble requires an OpenAPI/Swagger definition, got %s", def.Kind)
	}

	built, err := processor.BuildAll(ctx, def, opts...)
	if err != nil {
		return err
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		OutputHeader("API Definition Reassembler", specPath, def)
		cliutil.Writef(os.Stderr, "Definitions: %d\n", len(built))
		cliutil.Writef(os.Stderr, "Schema filtering: %t\n", !flags.NoFilter)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
	}

	if flags.Output == "" {
		for i, b := range built {
			if i > 0 {
				cliutil.Writef(os.Stdout, "---\n")
			}
			cliutil.Writef(os.Stdout, "# %s\n%s", b.Unit, b.Definition)
		}
		return nil
	}

	used := make(map[string]bool)
	for _, b := range built {
		name := uniqueFileName(used, UnitFileName(b.Unit))
		if err := fileutil.WriteOwnerFile(filepath.Join(flags.Output, name), []byte(b.Definition)); err != nil {
			return err
		}
	}
	env, err := def.EnvFile()
	if err != nil {
		return err
	}
	if env != "" {
		if err := fileutil.WriteOwnerFile(filepath.Join(flags.Output, ".env"), []byte(env)); err != nil {
			return err
		}
	}
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
	}
	return nil
}

// uniqueFileName returns name, or name with the first "-N" suffix not yet in
// used, and records the result. Distinct originals can normalize to the same
// unit path.
func uniqueFileName(used map[string]bool, name string) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
	used[candidate] = true
	return candidate
}
