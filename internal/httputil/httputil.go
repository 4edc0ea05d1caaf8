// Package httputil provides HTTP method and status helpers shared by the
// splitter, the Postman extractor and the source loader.
package httputil

import (
	"slices"
	"strings"
)

// HTTP Method Constants (lowercase, as they appear as path item keys)
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// HTTP Status Code Constants
const (
	MinSuccessStatus = 200
	MaxSuccessStatus = 299
)

// Methods lists every operation key a path item may carry, in the order the
// OpenAPI specification declares them.
var Methods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
	MethodQuery,
}

// IsMethod reports whether key names an HTTP operation within a path item.
// Matching is case-insensitive; keys such as "parameters", "summary" and
// extensions are not methods.
func IsMethod(key string) bool {
	return slices.Contains(Methods, strings.ToLower(key))
}

// IsSuccessStatus reports whether code is a 2xx HTTP status.
func IsSuccessStatus(code int) bool {
	return code >= MinSuccessStatus && code <= MaxSuccessStatus
}
