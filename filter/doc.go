// Package filter prunes a definition's schema container down to the schemas
// reachable from its paths.
//
// The closure is computed by one template algorithm ([Closure]) over a
// dialect [Strategy]. A strategy says where schemas live and what reference
// prefix points at them:
//
//	OAS3: components.schemas, "#/components/schemas/"
//	OAS2: definitions,        "#/definitions/"
//
// Starting from every $ref under paths, the work-list follows references into
// schema bodies, collecting each schema once. Reference cycles terminate on
// the visited set. References with another prefix are ignored, and references
// to absent schemas are recorded as dangling; neither is an error. A document
// without a paths key has nothing to filter and comes back unchanged.
//
// # Quick Start
//
//	doc, _ := docutil.Decode(data)
//	pruned := filter.Schemas(doc)
//
// Use [Filter] to also learn which schemas were kept, removed or dangling.
// The input document is never modified.
package filter
