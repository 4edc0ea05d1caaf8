// Package source loads API definitions from files or URLs and detects which
// pipeline handles them.
//
// Detection follows these rules, in order:
//
//   - http(s) URLs and .yml/.yaml files are OpenAPI/Swagger documents
//   - content with a top-level "openapi" or "swagger" key is OpenAPI/Swagger
//   - content with info._postman_id is a Postman collection
//
// Anything else is rejected with an [oaserrors.SourceError].
package source

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/apitestgen"
	"github.com/erraggy/apitestgen/internal/docutil"
	"github.com/erraggy/apitestgen/internal/httputil"
	"github.com/erraggy/apitestgen/oaserrors"
	"github.com/erraggy/apitestgen/postman"
)

// Kind identifies the pipeline for a source.
type Kind string

const (
	// KindNone marks an unrecognised source.
	KindNone Kind = ""
	// KindSwagger marks an OpenAPI v3 or Swagger v2 document.
	KindSwagger Kind = "swagger"
	// KindPostman marks a Postman collection.
	KindPostman Kind = "postman"
)

// DefaultTimeout bounds URL fetches when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// MaxBytes caps the size of a fetched document.
const MaxBytes = 64 << 20

// Source is a loaded input.
type Source struct {
	// Location is the file path or URL the data came from.
	Location string
	// Kind is the detected pipeline.
	Kind Kind
	// Data is the raw document.
	Data []byte
}

// IsURL reports whether location is an http or https URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Detect selects the pipeline for data loaded from location.
func Detect(location string, data []byte) (Kind, error) {
	if IsURL(location) {
		return KindSwagger, nil
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yml", ".yaml":
		return KindSwagger, nil
	}

	if doc, err := docutil.Decode(data); err == nil {
		if docutil.Has(doc, "openapi") || docutil.Has(doc, "swagger") {
			return KindSwagger, nil
		}
	}
	if postman.IsCollection(data) {
		return KindPostman, nil
	}
	return KindNone, &oaserrors.SourceError{
		Source:  location,
		Message: "not an OpenAPI/Swagger document or Postman collection",
	}
}

// Loader reads sources.
type Loader struct {
	// HTTPClient is used for URL sources. When nil a client with Timeout is
	// created per call.
	HTTPClient *http.Client

	// Timeout bounds URL fetches made with the default client.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification for the
	// default client.
	InsecureSkipVerify bool

	// UserAgent is sent with URL requests. Defaults to apitestgen.UserAgent().
	UserAgent string
}

// Load reads location with a default Loader and detects its kind.
func Load(ctx context.Context, location string) (*Source, error) {
	return (&Loader{}).Load(ctx, location)
}

// Load reads location and detects its kind.
func (l *Loader) Load(ctx context.Context, location string) (*Source, error) {
	var (
		data []byte
		err  error
	)
	if IsURL(location) {
		data, err = l.fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location) //nolint:gosec // user-provided input path
		if err != nil {
			err = &oaserrors.SourceError{Source: location, Message: "failed to read file", Cause: err}
		}
	}
	if err != nil {
		return nil, err
	}

	kind, err := Detect(location, data)
	if err != nil {
		return nil, err
	}
	return &Source{Location: location, Kind: kind, Data: data}, nil
}

func (l *Loader) client() *http.Client {
	if l.HTTPClient != nil {
		return l.HTTPClient
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	if l.InsecureSkipVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
				MinVersion:         tls.VersionTLS12,
			},
		}
	}
	return client
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &oaserrors.SourceError{Source: location, Message: "invalid URL", Cause: err}
	}
	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = apitestgen.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client().Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, &oaserrors.SourceError{Source: location, Message: "failed to fetch URL", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if !httputil.IsSuccessStatus(resp.StatusCode) {
		return nil, &oaserrors.SourceError{
			Source:     location,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return nil, &oaserrors.SourceError{Source: location, Message: "failed to read response body", Cause: err}
	}
	if len(data) > MaxBytes {
		return nil, &oaserrors.SourceError{Source: location, Message: fmt.Sprintf("response exceeds %d bytes", MaxBytes)}
	}
	return data, nil
}
