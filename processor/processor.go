package processor

import (
	"context"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen/definition"
	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/merger"
	"github.com/erraggy/apitestgen/oaserrors"
	"github.com/erraggy/apitestgen/postman"
	"github.com/erraggy/apitestgen/source"
	"github.com/erraggy/apitestgen/splitter"
)

// Definition is the processed form of one input.
type Definition struct {
	// Location is the file path or URL of the input.
	Location string

	// Kind is the detected pipeline.
	Kind source.Kind

	// Document is the decoded source document (OpenAPI only). It is shared
	// and must not be modified.
	Document *yaml.Node

	// Base is the YAML text of the document without paths (OpenAPI only).
	Base string

	// BaseURL is the server URL declared by the document, or "".
	BaseURL string

	// Units holds the merged path units and the verb units (OpenAPI only).
	Units []definition.Unit

	// Warnings collects non-fatal merge diagnostics.
	Warnings []string

	// Records holds the service-tagged request records (Postman only).
	Records []postman.Record

	// Services maps a service name to its aggregated request shapes
	// (Postman only).
	Services map[string][]postman.VerbInfo

	// EnvVars lists the {{variable}} names used as URL prefixes (Postman only).
	EnvVars []string

	// Endpoints is the configured endpoint prefix filter.
	Endpoints []string
}

// ShouldProcess reports whether a unit path passes the endpoint filter.
func (d *Definition) ShouldProcess(path string) bool {
	if len(d.Endpoints) == 0 {
		return true
	}
	for _, e := range d.Endpoints {
		if strings.HasPrefix(path, e) {
			return true
		}
	}
	return false
}

// Paths returns the path units that pass the endpoint filter.
func (d *Definition) Paths() []definition.Unit {
	return d.selectUnits(definition.KindPath)
}

// Verbs returns the verb units that pass the endpoint filter.
func (d *Definition) Verbs() []definition.Unit {
	return d.selectUnits(definition.KindVerb)
}

// Filtered returns every unit that passes the endpoint filter.
func (d *Definition) Filtered() []definition.Unit {
	var out []definition.Unit
	for _, u := range d.Units {
		if d.ShouldProcess(u.Path) {
			out = append(out, u)
		}
	}
	return out
}

// VerbsUnder returns the filtered verb units at or beneath path.
func (d *Definition) VerbsUnder(path string) []definition.Unit {
	var out []definition.Unit
	for _, u := range d.Verbs() {
		if definition.HasPathPrefix(u.Path, path) {
			out = append(out, u)
		}
	}
	return out
}

func (d *Definition) selectUnits(kind definition.Kind) []definition.Unit {
	var out []definition.Unit
	for _, u := range d.Units {
		if u.Kind == kind && d.ShouldProcess(u.Path) {
			out = append(out, u)
		}
	}
	return out
}

// Process loads location and runs the pipeline matching its kind.
func Process(ctx context.Context, location string, opts ...Option) (*Definition, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	loader := &source.Loader{HTTPClient: cfg.httpClient, Timeout: cfg.httpTimeout}
	src, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	cfg.logger.Info("loaded source", "location", location, "kind", string(src.Kind), "bytes", len(src.Data))
	return processSource(src, cfg)
}

// ProcessBytes runs the pipeline over in-memory data. location is used for
// detection and error messages only.
func ProcessBytes(location string, data []byte, opts ...Option) (*Definition, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	kind, err := source.Detect(location, data)
	if err != nil {
		return nil, err
	}
	return processSource(&source.Source{Location: location, Kind: kind, Data: data}, cfg)
}

func processSource(src *source.Source, cfg *config) (*Definition, error) {
	def := &Definition{
		Location:  src.Location,
		Kind:      src.Kind,
		Endpoints: cfg.endpoints,
	}

	switch src.Kind {
	case source.KindSwagger:
		if err := processOpenAPI(def, src.Data, cfg); err != nil {
			return nil, err
		}
	case source.KindPostman:
		if err := processPostman(def, src.Data); err != nil {
			return nil, err
		}
	default:
		return nil, &oaserrors.SourceError{Source: src.Location, Message: "unsupported source kind"}
	}

	cfg.logger.Debug("processed definition",
		"location", def.Location,
		"units", len(def.Units),
		"records", len(def.Records),
	)
	return def, nil
}

func processOpenAPI(def *Definition, data []byte, cfg *config) error {
	doc, err := docutil.Decode(data)
	if err != nil {
		return &oaserrors.ParseError{Path: def.Location, Message: "failed to decode definition", Cause: err}
	}

	split, err := splitter.Split(doc, splitter.WithLogger(cfg.logger))
	if err != nil {
		return err
	}
	merged, err := merger.Merge(split.Units, merger.WithLogger(cfg.logger))
	if err != nil {
		return err
	}

	def.Document = doc
	def.Base = split.Base
	def.BaseURL = ExtractBaseURL(doc)
	def.Units = merged.Units
	def.Warnings = merged.Warnings
	return nil
}

func processPostman(def *Definition, data []byte) error {
	records, err := postman.ExtractRequests(data)
	if err != nil {
		return err
	}
	groups := postman.GroupPathsByService(postman.DistinctBasePaths(records))

	def.Records = postman.TagServices(records, groups)
	def.Services = postman.MapVerbPathPairsToServices(records, groups)
	def.EnvVars = postman.ExtractEnvVars(records)
	return nil
}

// ExtractBaseURL returns the server URL of an OpenAPI 3 document
// (servers[0].url) or a Swagger 2 document (scheme://host+basePath, scheme
// defaulting to https). It returns "" when none is declared.
func ExtractBaseURL(doc *yaml.Node) string {
	if v := docutil.ScalarValue(docutil.Get(doc, "openapi")); strings.HasPrefix(v, "3.") {
		servers := docutil.Get(doc, "servers")
		if docutil.IsSequence(servers) && len(servers.Content) > 0 {
			return docutil.ScalarValue(docutil.Get(servers.Content[0], "url"))
		}
		return ""
	}

	if v := docutil.ScalarValue(docutil.Get(doc, "swagger")); strings.HasPrefix(v, "2.") {
		host := docutil.ScalarValue(docutil.Get(doc, "host"))
		if host == "" {
			return ""
		}
		scheme := "https"
		if schemes := docutil.Get(doc, "schemes"); docutil.IsSequence(schemes) && len(schemes.Content) > 0 {
			if s := docutil.ScalarValue(schemes.Content[0]); s != "" {
				scheme = s
			}
		}
		return scheme + "://" + host + docutil.ScalarValue(docutil.Get(doc, "basePath"))
	}
	return ""
}
