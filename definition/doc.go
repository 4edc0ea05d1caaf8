// Package definition defines the units a definition is decomposed into and
// the path conventions used to name and group them.
//
// A [Unit] is either a path unit, covering one path item with all of its
// operations, or a verb unit, covering a single operation of one path. Its
// Fragment is the YAML text of the unit's contribution to the paths map,
// keyed by the original (non-normalized) path.
//
// # Path Normalization
//
// [NormalizePath] strips a leading "api" segment and then a leading version
// segment of the form v<digits>:
//
//	/api/v1/pets    -> /pets
//	/api/v1beta/pets -> /v1beta/pets
//	/v1             -> /
//
// [RootPath] returns the first segment of a normalized path and is the key
// the merger groups path units by.
package definition
