package definition

import (
	"fmt"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/oaserrors"
)

// Kind discriminates path units from verb units.
type Kind string

const (
	// KindPath marks a unit holding one or more complete path items.
	KindPath Kind = "path"
	// KindVerb marks a unit holding a single operation.
	KindVerb Kind = "verb"
)

// Unit is one independently processable piece of a decomposed definition.
type Unit struct {
	// Kind is KindPath or KindVerb.
	Kind Kind

	// Path is the normalized path. For a merged path unit it is the root path.
	Path string

	// Fragment is the YAML text of this unit's entries in the paths map.
	// Keys are the original paths from the source document.
	Fragment string

	// Verb is the uppercase HTTP method. Verb units only.
	Verb string

	// RootPath is the grouping key of the unit's path. Verb units only.
	RootPath string
}

// NewPathUnit returns a path unit.
func NewPathUnit(path, fragment string) Unit {
	return Unit{Kind: KindPath, Path: path, Fragment: fragment}
}

// NewVerbUnit returns a verb unit.
func NewVerbUnit(path, verb, rootPath, fragment string) Unit {
	return Unit{Kind: KindVerb, Path: path, Verb: verb, RootPath: rootPath, Fragment: fragment}
}

// IsPath reports whether u is a path unit.
func (u Unit) IsPath() bool { return u.Kind == KindPath }

// IsVerb reports whether u is a verb unit.
func (u Unit) IsVerb() bool { return u.Kind == KindVerb }

// String returns a short identifier such as "path /pets" or "verb GET /pets".
func (u Unit) String() string {
	if u.IsVerb() {
		return fmt.Sprintf("verb %s %s", u.Verb, u.Path)
	}
	return fmt.Sprintf("path %s", u.Path)
}

// FragmentNode decodes the unit's fragment into a fresh mapping node.
func (u Unit) FragmentNode() (*yaml.Node, error) {
	node, err := docutil.DecodeString(u.Fragment)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: u.String(), Message: "invalid fragment", Cause: err}
	}
	if !docutil.IsMapping(node) {
		return nil, &oaserrors.ParseError{Path: u.String(), Message: "fragment is not a mapping"}
	}
	return node, nil
}

type pathJSON struct {
	Path string `json:"path"`
	YAML string `json:"yaml"`
	Type Kind   `json:"type"`
}

type verbJSON struct {
	Verb     string `json:"verb"`
	Path     string `json:"path"`
	RootPath string `json:"root_path"`
	YAML     string `json:"yaml"`
	Type     Kind   `json:"type"`
}

// MarshalJSON emits {path, yaml, type} for path units and
// {verb, path, root_path, yaml, type} for verb units.
func (u Unit) MarshalJSON() ([]byte, error) {
	switch u.Kind {
	case KindPath:
		return json.Marshal(pathJSON{Path: u.Path, YAML: u.Fragment, Type: KindPath})
	case KindVerb:
		return json.Marshal(verbJSON{
			Verb:     u.Verb,
			Path:     u.Path,
			RootPath: u.RootPath,
			YAML:     u.Fragment,
			Type:     KindVerb,
		})
	default:
		return nil, fmt.Errorf("definition: unknown unit kind %q", u.Kind)
	}
}

// UnmarshalJSON accepts either serialized form, selected by "type".
func (u *Unit) UnmarshalJSON(data []byte) error {
	var v verbJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Type {
	case KindPath:
		*u = NewPathUnit(v.Path, v.YAML)
	case KindVerb:
		*u = NewVerbUnit(v.Path, v.Verb, v.RootPath, v.YAML)
	default:
		return fmt.Errorf("definition: unknown unit type %q", v.Type)
	}
	return nil
}
