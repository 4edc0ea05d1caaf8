package postman

import (
	"regexp"
	"slices"
	"strings"
)

// ServiceOf returns the service name of a base path: the text between the
// first and second slash. "/users/1" belongs to "users"; a path without a
// slash belongs to "".
func ServiceOf(p string) string {
	parts := strings.SplitN(p, "/", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// GroupPathsByService buckets paths by [ServiceOf]. Paths keep their input
// order within a service.
func GroupPathsByService(paths []string) map[string][]string {
	groups := make(map[string][]string)
	for _, p := range paths {
		svc := ServiceOf(p)
		groups[svc] = append(groups[svc], p)
	}
	return groups
}

// DistinctBasePaths returns the base paths of records in first-appearance order.
func DistinctBasePaths(records []Record) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range records {
		base := r.BasePath()
		if !seen[base] {
			seen[base] = true
			out = append(out, base)
		}
	}
	return out
}

// MapVerbPathPairsToServices aggregates records and files each VerbInfo
// under every service whose route set contains its path, with RootPath set
// to the service name.
func MapVerbPathPairsToServices(records []Record, groups map[string][]string) map[string][]VerbInfo {
	out := make(map[string][]VerbInfo)
	for _, info := range ExtractVerbPathInfo(records) {
		for _, svc := range sortedKeys(groups) {
			if slices.Contains(groups[svc], info.Path) {
				tagged := info
				tagged.RootPath = svc
				out[svc] = append(out[svc], tagged)
			}
		}
	}
	return out
}

// TagServices returns a copy of records with Service set to the first
// service (in name order) whose route set contains the record's base path.
func TagServices(records []Record, groups map[string][]string) []Record {
	services := sortedKeys(groups)
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r
		for _, svc := range services {
			if slices.Contains(groups[svc], r.BasePath()) {
				out[i].Service = svc
				break
			}
		}
	}
	return out
}

var envVarPattern = regexp.MustCompile(`^\{\{(.*?)}}`)

// ExtractEnvVars returns the distinct {{variable}} names that prefix record
// URLs, in first-appearance order.
func ExtractEnvVars(records []Record) []string {
	var vars []string
	seen := make(map[string]bool)
	for _, r := range records {
		m := envVarPattern.FindStringSubmatch(r.Path)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		vars = append(vars, m[1])
	}
	return vars
}
