package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/erraggy/apitestgen/internal/cliutil"
	"github.com/erraggy/apitestgen/internal/fileutil"
	"github.com/erraggy/apitestgen/postman"
	"github.com/erraggy/apitestgen/processor"
	"github.com/erraggy/apitestgen/source"
)

// PostmanFlags contains flags for the postman command
type PostmanFlags struct {
	Output  string
	Format  string
	Service string
	Records bool
	Quiet   bool
	Verbose bool
}

// SetupPostmanFlags creates and configures a FlagSet for the postman command.
// Returns the FlagSet and a PostmanFlags struct with bound flag variables.
func SetupPostmanFlags() (*flag.FlagSet, *PostmanFlags) {
	fs := flag.NewFlagSet("postman", flag.ContinueOnError)
	flags := &PostmanFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Service, "service", "", "only report this service")
	fs.BoolVar(&flags.Records, "records", false, "include individual request records")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose: log pipeline stages to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apitestgen postman [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Extract request shapes from a Postman collection.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nRequests are grouped into services by the first path segment. For each\n")
		cliutil.Writef(fs.Output(), "(path, verb) pair, query parameters and body attributes are typed as\n")
		cliutil.Writef(fs.Output(), "number, string, boolean, or array; conflicting observations widen to string.\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apitestgen postman collection.json\n")
		cliutil.Writef(fs.Output(), "  apitestgen postman --service orders --format json collection.json\n")
		cliutil.Writef(fs.Output(), "  apitestgen postman --records --format yaml -o shapes.yaml collection.json\n")
	}

	return fs, flags
}

// postmanReport is the structured form of an extraction.
type postmanReport struct {
	Input    string                        `json:"input"`
	EnvVars  []string                      `json:"env_vars,omitempty"`
	Services map[string][]postman.VerbInfo `json:"services"`
	Records  []postman.Record              `json:"records,omitempty"`
}

// HandlePostman executes the postman command
func HandlePostman(args []string) error {
	fs, flags := SetupPostmanFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("postman command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	def, err := LoadDefinition(context.Background(), specPath, processor.WithLogger(NewLogger(flags.Verbose)))
	if err != nil {
		return fmt.Errorf("processing %s: %w", FormatSpecPath(specPath), err)
	}
	if def.Kind != source.KindPostman {
		return fmt.Errorf("postman requires a Postman collection, got %s", def.Kind)
	}

	report := postmanReport{
		Input:    FormatSpecPath(specPath),
		EnvVars:  def.EnvVars,
		Services: def.Services,
	}
	if flags.Service != "" {
		verbs, ok := def.Services[flags.Service]
		if !ok {
			return fmt.Errorf("unknown service '%s'", flags.Service)
		}
		report.Services = map[string][]postman.VerbInfo{flags.Service: verbs}
	}
	if flags.Records {
		for _, r := range def.Records {
			if flags.Service == "" || r.Service == flags.Service {
				report.Records = append(report.Records, r)
			}
		}
	}

	if !flags.Quiet {
		OutputHeader("Postman Extractor", specPath, def)
		cliutil.Writef(os.Stderr, "Records: %d\n", len(def.Records))
		cliutil.Writef(os.Stderr, "Services: %d\n", len(def.Services))
		if len(def.EnvVars) > 0 {
			cliutil.Writef(os.Stderr, "Env vars: %s\n", strings.Join(def.EnvVars, ", "))
		}
		cliutil.Writef(os.Stderr, "\n")
	}

	var out []byte
	if flags.Format == FormatText {
		var b strings.Builder
		writePostmanText(&b, report)
		out = []byte(b.String())
	} else {
		out, err = MarshalStructured(report, flags.Format)
		if err != nil {
			return err
		}
		if !strings.HasSuffix(string(out), "\n") {
			out = append(out, '\n')
		}
	}

	if flags.Output != "" {
		if err := fileutil.WriteOwnerFile(flags.Output, out); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing to stdout: %w", err)
	}
	return nil
}

func writePostmanText(w io.Writer, report postmanReport) {
	names := make([]string, 0, len(report.Services))
	for name := range report.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cliutil.Writef(w, "%s\n", name)
		for _, info := range report.Services[name] {
			cliutil.Writef(w, "  %s %s\n", info.Verb, info.Path)
			for _, q := range sortedNames(info.QueryParams) {
				cliutil.Writef(w, "    ?%s: %s\n", q, info.QueryParams[q])
			}
			writeAttributes(w, info.BodyAttributes, "    ")
		}
	}
	for _, r := range report.Records {
		cliutil.Writef(w, "%s  %s %s\n", r.FilePath, r.Verb, r.Path)
	}
}

func writeAttributes(w io.Writer, attrs postman.Attributes, indent string) {
	for _, name := range sortedNames(attrs) {
		switch v := attrs[name].(type) {
		case postman.Attributes:
			cliutil.Writef(w, "%s%s:\n", indent, name)
			writeAttributes(w, v, indent+"  ")
		default:
			cliutil.Writef(w, "%s%s: %v\n", indent, name, v)
		}
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
