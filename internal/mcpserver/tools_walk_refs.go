package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apitestgen/source"
	"github.com/erraggy/apitestgen/walker"
)

type walkRefsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OpenAPI/Swagger definition to walk"`
	Target  string    `json:"target,omitempty"   jsonschema:"Filter by ref target (supports * and ? glob, e.g. *schemas/Pet or *definitions/*)"`
	Detail  bool      `json:"detail,omitempty"   jsonschema:"Return individual source locations instead of aggregated counts"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: section"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type refSummary struct {
	Ref   string `json:"ref"`
	Count int    `json:"count"`
}

type refDetail struct {
	Ref        string `json:"ref"`
	SourcePath string `json:"source_path"`
}

// walkRefsOutput holds results from walk_refs. In summary mode, Total and
// Matched count unique ref targets. In detail and group_by modes, they count
// individual ref occurrences.
type walkRefsOutput struct {
	Total     int          `json:"total"`
	Matched   int          `json:"matched"`
	Returned  int          `json:"returned"`
	Summaries []refSummary `json:"refs,omitempty"`
	Details   []refDetail  `json:"details,omitempty"`
	Groups    []groupCount `json:"groups,omitempty"`
}

func handleWalkRefs(ctx context.Context, _ *mcp.CallToolRequest, input walkRefsInput) (*mcp.CallToolResult, any, error) {
	if err := validateGlobPattern(input.Target); err != nil {
		return errResult(err), nil, nil
	}
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"section"}); err != nil {
		return errResult(err), nil, nil
	}

	def, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}
	if def.Kind != source.KindSwagger || def.Document == nil {
		return errResult(fmt.Errorf("walk_refs requires an OpenAPI/Swagger definition, got %s", def.Kind)), nil, nil
	}

	allRefs := walker.CollectRefInfos(def.Document)
	filtered := filterRefs(allRefs, input.Target)

	if input.GroupBy != "" {
		groups := groupAndSort(filtered, func(ref walker.RefInfo) []string {
			return []string{refSection(ref.SourcePath)}
		})
		paged := paginate(groups, input.Offset, input.Limit)
		return nil, walkRefsOutput{
			Total:    len(allRefs),
			Matched:  len(filtered),
			Returned: len(paged),
			Groups:   paged,
		}, nil
	}

	if input.Detail {
		paged := paginate(filtered, input.Offset, input.Limit)
		output := walkRefsOutput{
			Total:    len(allRefs),
			Matched:  len(filtered),
			Returned: len(paged),
			Details:  makeSlice[refDetail](len(paged)),
		}
		for _, ref := range paged {
			output.Details = append(output.Details, refDetail{Ref: ref.Ref, SourcePath: ref.SourcePath})
		}
		return nil, output, nil
	}

	counts := make(map[string]int)
	for _, ref := range filtered {
		counts[ref.Ref]++
	}
	summaries := make([]refSummary, 0, len(counts))
	for ref, count := range counts {
		summaries = append(summaries, refSummary{Ref: ref, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Ref < summaries[j].Ref
	})

	paged := paginate(summaries, input.Offset, input.Limit)
	return nil, walkRefsOutput{
		Total:     countUniqueRefs(allRefs),
		Matched:   len(summaries),
		Returned:  len(paged),
		Summaries: paged,
	}, nil
}

func filterRefs(refs []walker.RefInfo, target string) []walker.RefInfo {
	if target == "" {
		return refs
	}
	var filtered []walker.RefInfo
	for _, ref := range refs {
		if matchRefGlob(ref.Ref, target) {
			filtered = append(filtered, ref)
		}
	}
	return filtered
}

// countUniqueRefs returns the number of distinct ref targets.
func countUniqueRefs(refs []walker.RefInfo) int {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		seen[ref.Ref] = struct{}{}
	}
	return len(seen)
}

// refSection returns the top-level key of a JSON path such as
// "$.paths['/pets'].get", or "$" for the root.
func refSection(jsonPath string) string {
	rest := strings.TrimPrefix(jsonPath, "$")
	rest = strings.TrimPrefix(rest, ".")
	if rest == "" {
		return "$"
	}
	if strings.HasPrefix(rest, "['") {
		if end := strings.Index(rest, "']"); end > 0 {
			return rest[2:end]
		}
	}
	if i := strings.IndexAny(rest, ".["); i >= 0 {
		return rest[:i]
	}
	return rest
}

// matchRefGlob matches a $ref value against a glob pattern. * and ? may match
// across / separators in refs like "#/components/schemas/Pet".
func matchRefGlob(ref, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.EqualFold(ref, pattern)
	}
	normalizedRef := strings.ReplaceAll(strings.ToLower(ref), "/", ":")
	normalizedPattern := strings.ReplaceAll(strings.ToLower(pattern), "/", ":")
	matched, err := filepath.Match(normalizedPattern, normalizedRef)
	return err == nil && matched
}
