// Package processor runs the end-to-end pipeline for one input: load,
// detect, decompose, merge, and reassemble.
//
// For OpenAPI/Swagger inputs, [Process] splits the document, merges path
// units by root, applies the configured endpoint prefixes and returns a
// [Definition] holding the base document and the units. [BuildAll] then
// reassembles every unit into a standalone definition concurrently; the base
// is shared read-only across workers.
//
// For Postman collections, [Process] extracts request records, groups them
// into services and tags each record with its service.
//
// # Configuration
//
//	def, err := processor.Process(ctx, "openapi.yaml",
//	    processor.WithEndpoints("/pets"),
//	    processor.WithFilterSchemas(true),
//	    processor.WithConcurrency(8),
//	)
package processor
