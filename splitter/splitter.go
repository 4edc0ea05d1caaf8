// Package splitter decomposes a definition into path units, verb units and
// a shared base document.
//
// For every entry of the paths map, in document order, Split emits one path
// unit carrying the complete path item, followed by one verb unit per
// operation. A verb unit also carries the path item's parameters, if any.
// Fragments keep the original path key; the units themselves are
// tagged with the normalized path (see [definition.NormalizePath]).
//
// The base document is the input without its paths map, serialized once so
// it can be shared read-only by every reassembly.
//
//	res, err := splitter.SplitBytes(data)
//	if err != nil {
//	    return err
//	}
//	for _, u := range res.Units {
//	    fmt.Println(u)
//	}
package splitter

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen"
	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/internal/httputil"
	"github.com/erraggy/apitestgen/oaserrors"
)

// Result holds the output of a split.
type Result struct {
	// Base is the YAML text of the input without its paths map.
	Base string

	// Units holds path and verb units in emission order.
	Units []definition.Unit
}

// PathUnits returns the path units in order.
func (r *Result) PathUnits() []definition.Unit {
	return r.filter(definition.KindPath)
}

// VerbUnits returns the verb units in order.
func (r *Result) VerbUnits() []definition.Unit {
	return r.filter(definition.KindVerb)
}

func (r *Result) filter(kind definition.Kind) []definition.Unit {
	var out []definition.Unit
	for _, u := range r.Units {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

// Option configures a split.
type Option func(*splitConfig) error

type splitConfig struct {
	logger apitestgen.Logger
}

// WithLogger sets the logger used for debug output.
func WithLogger(l apitestgen.Logger) Option {
	return func(cfg *splitConfig) error {
		cfg.logger = l
		return nil
	}
}

func applyOptions(opts ...Option) (*splitConfig, error) {
	cfg := &splitConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = apitestgen.OrNop(cfg.logger)
	return cfg, nil
}

// SplitBytes decodes a JSON or YAML definition and splits it.
func SplitBytes(data []byte, opts ...Option) (*Result, error) {
	doc, err := docutil.Decode(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "failed to decode definition", Cause: err}
	}
	return Split(doc, opts...)
}

// Split decomposes doc. The input is not modified. A document without a
// paths map yields its base text and no units.
func Split(doc *yaml.Node, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if !docutil.IsMapping(doc) {
		return nil, &oaserrors.ParseError{Message: "definition must be a mapping"}
	}

	base := docutil.Clone(doc)
	docutil.Delete(base, "paths")
	baseText, err := docutil.Encode(base)
	if err != nil {
		return nil, fmt.Errorf("splitter: failed to encode base: %w", err)
	}

	result := &Result{Base: baseText}
	paths := docutil.Get(doc, "paths")
	if !docutil.IsMapping(paths) {
		cfg.logger.Debug("definition has no paths")
		return result, nil
	}

	for i := 0; i+1 < len(paths.Content); i += 2 {
		units, err := splitPath(paths.Content[i], paths.Content[i+1])
		if err != nil {
			return nil, err
		}
		cfg.logger.Debug("split path", "path", paths.Content[i].Value, "units", len(units))
		result.Units = append(result.Units, units...)
	}
	return result, nil
}

// splitPath returns the path unit for one paths entry followed by its verb units.
func splitPath(keyNode, item *yaml.Node) ([]definition.Unit, error) {
	original := keyNode.Value
	normalized := definition.NormalizePath(original)

	fragment, err := encodeEntry(keyNode, docutil.Clone(item))
	if err != nil {
		return nil, err
	}
	units := []definition.Unit{definition.NewPathUnit(normalized, fragment)}

	root := definition.RootPath(normalized)
	shared := docutil.Get(item, "parameters")
	var splitErr error
	docutil.Each(item, func(key string, op *yaml.Node) {
		if splitErr != nil || !httputil.IsMethod(key) {
			return
		}
		// Path-level parameters travel with each operation so that
		// templated segments stay declared in a standalone verb definition.
		single := docutil.NewMapping()
		if shared != nil {
			docutil.Set(single, "parameters", docutil.Clone(shared))
		}
		docutil.Set(single, key, docutil.Clone(op))

		fragment, err := encodeEntry(keyNode, single)
		if err != nil {
			splitErr = err
			return
		}
		units = append(units, definition.NewVerbUnit(normalized, strings.ToUpper(key), root, fragment))
	})
	if splitErr != nil {
		return nil, splitErr
	}
	return units, nil
}

func encodeEntry(keyNode, value *yaml.Node) (string, error) {
	entry := docutil.NewMapping()
	entry.Content = append(entry.Content, docutil.Clone(keyNode), value)
	text, err := docutil.Encode(entry)
	if err != nil {
		return "", fmt.Errorf("splitter: failed to encode %q: %w", keyNode.Value, err)
	}
	return text, nil
}
