package main

import (
	"fmt"
	"os"

	"github.com/erraggy/apitestgen"
	"github.com/erraggy/apitestgen/cmd/apitestgen/commands"
)

// commandNames lists every top-level command, used for typo suggestions.
var commandNames = []string{"split", "filter", "assemble", "postman", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apitestgen v%s\n", apitestgen.Version())
		fmt.Println(apitestgen.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "split":
		err = commands.HandleSplit(os.Args[2:])
	case "filter":
		err = commands.HandleFilter(os.Args[2:])
	case "assemble":
		err = commands.HandleAssemble(os.Args[2:])
	case "postman":
		err = commands.HandlePostman(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`apitestgen - API definition decomposition and reassembly

Usage:
  apitestgen <command> [options]

Commands:
  split       Split an OpenAPI/Swagger definition into path and verb units
  filter      Remove schemas not reachable from a definition's paths
  assemble    Build a standalone definition for every unit
  postman     Extract request shapes from a Postman collection
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  apitestgen split openapi.yaml
  apitestgen split --type verb --endpoint /pets https://example.com/swagger.json
  apitestgen filter -o trimmed.yaml openapi.yaml
  apitestgen assemble -o out/ openapi.yaml
  apitestgen postman --format json collection.json

Run 'apitestgen <command> --help' for more information on a command.`)
}
