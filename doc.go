// Package apitestgen decomposes API definitions into per-endpoint units and
// reassembles them into small standalone definitions.
//
// Two kinds of input are supported: OpenAPI/Swagger documents (OAS 2.0 and
// OAS 3.x, in YAML or JSON) and Postman v2 collections. OpenAPI input is split
// into path and verb units that can be rebuilt one at a time, optionally with
// their schemas pruned to what the unit actually references. Postman input is
// reduced to the request shapes observed per service.
//
// # Overview
//
// The pipeline is made of small packages that can be used on their own:
//
//   - source: Load a file or URL and detect whether it is a definition or a collection
//   - splitter: Split a definition into a base document plus path and verb units
//   - merger: Combine path units that share a root path
//   - assembler: Rebuild a standalone definition from the base and one unit
//   - filter: Prune schemas (components/schemas or definitions) to those reachable from paths
//   - walker: Walk a document tree and collect $ref targets
//   - postman: Extract request records and per-service request shapes from a collection
//   - processor: Run the whole pipeline for one input
//
// # Quick Start
//
// Process a definition and build one standalone document per unit:
//
//	import "github.com/erraggy/apitestgen/processor"
//
//	def, err := processor.Process(ctx, "openapi.yaml", processor.WithEndpoints("/pets"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	built, err := processor.BuildAll(ctx, def, processor.WithConcurrency(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, b := range built {
//		fmt.Printf("# %s\n%s", b.Unit, b.Definition)
//	}
//
// Summarize a Postman collection by service:
//
//	def, err := processor.Process(ctx, "collection.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for service, verbs := range def.Services {
//		fmt.Println(service, len(verbs))
//	}
//
// # Units
//
// A path unit holds the entries of the paths map that share a root path. A
// verb unit holds a single operation. Unit paths are normalized: leading
// "api" and version segments are dropped, so "/api/v1/pets/{id}" becomes
// "/pets/{id}" with root path "/pets". Fragments keep the original keys, so a
// rebuilt definition still serves the original URLs.
//
// # Schema Filtering
//
// Filtering keeps the transitive closure of schemas referenced from the
// paths map and drops the rest. Documents without a paths key or a schema
// container are returned unchanged. See the filter package for details.
//
// # Command-Line Interface
//
// The apitestgen command exposes the pipeline as split, filter, assemble, and
// postman subcommands, and as a Model Context Protocol server (apitestgen mcp).
// Run "apitestgen help" for usage.
//
// # Logging
//
// Packages accept a Logger through their WithLogger options. Use
// NewSlogAdapter to route log output to a *slog.Logger. A nil logger disables
// logging.
package apitestgen
