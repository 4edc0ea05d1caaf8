// Package merger regroups split path units by their root resource.
//
// Path units whose normalized paths share a root ("/users" and
// "/users/{id}" both have root "/users") are combined into one path unit
// whose fragment holds every original path key. The first unit seen for a
// root wins on key collisions. Verb units are never combined; exact
// duplicates are dropped.
//
// Merge is a pure reduction: it builds new units and never modifies its
// input. It is not safe to merge units of one root concurrently, so callers
// parallelising work do so after merging.
package merger

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen"
	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/internal/docutil"
)

// Stats summarizes a merge.
type Stats struct {
	// PathUnitsIn is the number of path units in the input.
	PathUnitsIn int
	// PathUnitsOut is the number of merged path units, one per root.
	PathUnitsOut int
	// VerbUnits is the number of verb units in the output.
	VerbUnits int
	// DuplicateVerbs is the number of identical verb units dropped.
	DuplicateVerbs int
}

// Result holds the merged units.
type Result struct {
	// Units holds one path unit per root plus every distinct verb unit, in
	// order of first appearance.
	Units []definition.Unit
	// Stats summarizes the merge.
	Stats Stats
	// Warnings lists path keys that were dropped on collision.
	Warnings []string
}

// Option configures a merge.
type Option func(*mergeConfig) error

type mergeConfig struct {
	logger apitestgen.Logger
}

// WithLogger sets the logger used for debug output.
func WithLogger(l apitestgen.Logger) Option {
	return func(cfg *mergeConfig) error {
		cfg.logger = l
		return nil
	}
}

// group accumulates the fragments of one root.
type group struct {
	root     string
	fragment *yaml.Node
}

// slot is one output position: either a path group or a verb unit.
type slot struct {
	group *group
	verb  definition.Unit
}

type verbKey struct {
	path, verb, fragment string
}

// Merge combines path units by root path.
func Merge(units []definition.Unit, opts ...Option) (*Result, error) {
	cfg := &mergeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	logger := apitestgen.OrNop(cfg.logger)

	result := &Result{}
	var slots []slot
	groups := make(map[string]*group)
	seenVerbs := make(map[verbKey]bool)

	for i, u := range units {
		switch u.Kind {
		case definition.KindPath:
			result.Stats.PathUnitsIn++
			fragment, err := u.FragmentNode()
			if err != nil {
				return nil, fmt.Errorf("merger: unit %d: %w", i, err)
			}

			root := definition.RootPath(u.Path)
			g, ok := groups[root]
			if !ok {
				g = &group{root: root, fragment: docutil.NewMapping()}
				groups[root] = g
				slots = append(slots, slot{group: g})
			}
			result.Warnings = append(result.Warnings, union(g, fragment)...)

		case definition.KindVerb:
			key := verbKey{path: u.Path, verb: u.Verb, fragment: u.Fragment}
			if seenVerbs[key] {
				result.Stats.DuplicateVerbs++
				logger.Debug("dropped duplicate verb unit", "path", u.Path, "verb", u.Verb)
				continue
			}
			seenVerbs[key] = true
			slots = append(slots, slot{verb: u})

		default:
			return nil, fmt.Errorf("merger: unit %d has unknown kind %q", i, u.Kind)
		}
	}

	for _, s := range slots {
		if s.group == nil {
			result.Units = append(result.Units, s.verb)
			result.Stats.VerbUnits++
			continue
		}
		text, err := docutil.Encode(s.group.fragment)
		if err != nil {
			return nil, fmt.Errorf("merger: root %s: %w", s.group.root, err)
		}
		result.Units = append(result.Units, definition.NewPathUnit(s.group.root, text))
		result.Stats.PathUnitsOut++
		logger.Debug("merged root", "root", s.group.root, "paths", len(s.group.fragment.Content)/2)
	}

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	return result, nil
}

// union copies the entries of fragment into g without overwriting existing
// keys, returning a warning for every key it skipped.
func union(g *group, fragment *yaml.Node) []string {
	var warnings []string
	for i := 0; i+1 < len(fragment.Content); i += 2 {
		key := fragment.Content[i]
		if docutil.Has(g.fragment, key.Value) {
			warnings = append(warnings, fmt.Sprintf("path %q already present under root %s; keeping first definition", key.Value, g.root))
			continue
		}
		g.fragment.Content = append(g.fragment.Content, key, fragment.Content[i+1])
	}
	return warnings
}
