package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/apitestgen/internal/cliutil"
	"github.com/erraggy/apitestgen/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through APITESTGEN_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apitestgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Run a Model Context Protocol server over stdio.\n\n")
		cliutil.Writef(fs.Output(), "Tools:\n")
		cliutil.Writef(fs.Output(), "  detect, split, filter_schemas, assemble, postman_extract, walk_refs\n")
		cliutil.Writef(fs.Output(), "\nConfiguration (environment):\n")
		cliutil.Writef(fs.Output(), "  APITESTGEN_CACHE_ENABLED      cache processed inputs (default true)\n")
		cliutil.Writef(fs.Output(), "  APITESTGEN_FILTER_SCHEMAS     prune schemas when assembling (default true)\n")
		cliutil.Writef(fs.Output(), "  APITESTGEN_HTTP_TIMEOUT       timeout for URL inputs (default 30s)\n")
		cliutil.Writef(fs.Output(), "  APITESTGEN_ALLOW_PRIVATE_IPS  allow URL inputs on private networks (default false)\n")
		cliutil.Writef(fs.Output(), "\nExample client configuration:\n")
		cliutil.Writef(fs.Output(), "  {\"command\": \"apitestgen\", \"args\": [\"mcp\"]}\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
