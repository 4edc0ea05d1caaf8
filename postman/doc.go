// Package postman flattens a Postman collection into request records and
// aggregates them into per-path, per-verb request shapes.
//
// # Extraction
//
// [ExtractRequests] walks the collection tree. A node with an "item" list is
// a folder and extends the folder path by its camelCased name. A node with a
// "request" key, or with an "event" entry carrying one, is a request leaf.
// Anything else is searched recursively. Records are deduplicated by name;
// the first occurrence wins.
//
// # Aggregation
//
// [ExtractVerbPathInfo] groups records by their path without query string
// and, for each verb, merges the observed query parameters and body
// attributes into a [VerbInfo]. Values consisting only of digits are typed
// "number"; anything else is "string", and a single string observation widens
// a parameter to "string" regardless of order.
//
// # Services
//
// [GroupPathsByService] buckets base paths by their first segment.
// [MapVerbPathPairsToServices] and [TagServices] attach that service name to
// aggregated shapes and to records respectively.
package postman
