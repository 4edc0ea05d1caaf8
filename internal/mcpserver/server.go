// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the apitestgen pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen"
)

const serverInstructions = `apitestgen MCP server: splits OpenAPI/Swagger definitions into per-path and per-verb units, prunes unused schemas, reassembles standalone per-endpoint definitions, and extracts request shapes from Postman collections.

Configuration: All defaults are configurable via APITESTGEN_* environment variables set in your MCP client config.

Key settings:
- APITESTGEN_CACHE_FILE_TTL (default: 15m): cache TTL for local file inputs
- APITESTGEN_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched inputs
- APITESTGEN_CACHE_ENABLED (default: true): disable caching entirely
- APITESTGEN_LIST_LIMIT (default: 100): default result limit for list tools
- APITESTGEN_FILTER_SCHEMAS (default: true): prune unused schemas when assembling
- APITESTGEN_HTTP_TIMEOUT (default: 30s): timeout for URL fetches
- APITESTGEN_ALLOW_PRIVATE_IPS (default: false): allow URL inputs on private networks

Caching: Processed inputs are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		defCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "apitestgen", Version: apitestgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect",
		Description: "Detect whether an input is an OpenAPI/Swagger definition or a Postman collection. Returns the kind, the declared base URL, and a unit or record count.",
	}, handleDetect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "split",
		Description: "Split an OpenAPI/Swagger definition into path units (one per normalized root path, merged) and verb units (one per operation). Returns unit summaries; use include_yaml=true for fragment text. Filter by type (path or verb) and endpoints (path prefixes). Use group_by (root or type) to get distribution counts instead of individual units.",
	}, handleSplit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_schemas",
		Description: "Prune the schema section of an OpenAPI 3 (components.schemas) or Swagger 2 (definitions) document to the transitive closure of schemas referenced from paths. Returns kept, removed, and dangling references; use include_document=true for the filtered YAML.",
	}, handleFilterSchemas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "assemble",
		Description: "Reassemble standalone definitions for the units at a normalized path. Without verb, returns the merged path unit of the path's root (/pets/{id} selects /pets); with verb, returns that operation's unit. Schema filtering follows APITESTGEN_FILTER_SCHEMAS unless filter is set.",
	}, handleAssemble)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "postman_extract",
		Description: "Extract request records from a Postman collection, group them into services by first path segment, and aggregate query parameter and body attribute types per base path and verb. Filter by service. Use records=true for individual request records.",
	}, handlePostmanExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_refs",
		Description: "Walk and count $ref references in an OpenAPI/Swagger definition. By default, returns unique ref targets ranked by reference count (most-referenced first). Use target to filter (supports * glob, e.g. *schemas/Pet*). Use detail=true to see individual source locations instead of counts. Use group_by=section to get counts by top-level document section.",
	}, handleWalkRefs)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}
