// Package assembler rebuilds standalone definitions from a shared base
// document and the partial paths content of one or more units.
//
// An [Assembler] decodes the base once and may be used concurrently: every
// build works on a private copy.
//
//	asm, err := assembler.New(split.Base)
//	if err != nil {
//	    return err
//	}
//	full, err := asm.BuildUnit(unit, true)
package assembler

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/filter"
	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/oaserrors"
)

// Assembler holds a decoded base document.
type Assembler struct {
	base *yaml.Node
}

// New decodes baseYAML. An empty base is treated as an empty document.
func New(baseYAML string) (*Assembler, error) {
	base, err := docutil.DecodeString(baseYAML)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "base", Message: "failed to decode base definition", Cause: err}
	}
	if !docutil.IsMapping(base) {
		return nil, &oaserrors.ParseError{Path: "base", Message: "base definition must be a mapping"}
	}
	return &Assembler{base: base}, nil
}

// BuildNode returns a copy of the base with its paths set to partialPaths.
func (a *Assembler) BuildNode(partialPathsYAML string) (*yaml.Node, error) {
	partial, err := docutil.DecodeString(partialPathsYAML)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "paths", Message: "failed to decode partial paths", Cause: err}
	}
	if !docutil.IsMapping(partial) {
		return nil, &oaserrors.ParseError{Path: "paths", Message: "partial paths must be a mapping"}
	}

	doc := docutil.Clone(a.base)
	docutil.Set(doc, "paths", partial)
	return doc, nil
}

// Build returns the full definition text for partialPathsYAML.
func (a *Assembler) Build(partialPathsYAML string) (string, error) {
	doc, err := a.BuildNode(partialPathsYAML)
	if err != nil {
		return "", err
	}
	return encode(doc)
}

// BuildFiltered is Build with the schema container pruned to the schemas
// reachable from partialPathsYAML.
func (a *Assembler) BuildFiltered(partialPathsYAML string) (string, error) {
	doc, err := a.BuildNode(partialPathsYAML)
	if err != nil {
		return "", err
	}
	return encode(filter.Schemas(doc))
}

// BuildUnit builds the definition for u's fragment, filtered or not.
func (a *Assembler) BuildUnit(u definition.Unit, filtered bool) (string, error) {
	var (
		out string
		err error
	)
	if filtered {
		out, err = a.BuildFiltered(u.Fragment)
	} else {
		out, err = a.Build(u.Fragment)
	}
	if err != nil {
		return "", fmt.Errorf("assembler: %s: %w", u, err)
	}
	return out, nil
}

// BuildFullDefinition combines baseYAML and partialPathsYAML into one
// definition.
func BuildFullDefinition(baseYAML, partialPathsYAML string) (string, error) {
	a, err := New(baseYAML)
	if err != nil {
		return "", err
	}
	return a.Build(partialPathsYAML)
}

// BuildFilteredDefinition is BuildFullDefinition followed by schema
// filtering.
func BuildFilteredDefinition(baseYAML, partialPathsYAML string) (string, error) {
	a, err := New(baseYAML)
	if err != nil {
		return "", err
	}
	return a.BuildFiltered(partialPathsYAML)
}

func encode(doc *yaml.Node) (string, error) {
	out, err := docutil.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("assembler: %w", err)
	}
	return out, nil
}
