package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apitestgen/postman"
)

func TestSetupPostmanFlags(t *testing.T) {
	fs, flags := SetupPostmanFlags()

	assert.Equal(t, FormatText, flags.Format)
	assert.False(t, flags.Records)

	require.NoError(t, fs.Parse([]string{"--format", "yaml", "--service", "orders", "--records", "c.json"}))
	assert.Equal(t, FormatYAML, flags.Format)
	assert.Equal(t, "orders", flags.Service)
	assert.True(t, flags.Records)
	assert.Equal(t, "c.json", fs.Arg(0))
}

func TestHandlePostman_NoArgs(t *testing.T) {
	assert.Error(t, HandlePostman([]string{}))
}

func TestHandlePostman_Help(t *testing.T) {
	assert.NoError(t, HandlePostman([]string{"--help"}))
}

func TestHandlePostman_JSONOutput(t *testing.T) {
	collection := writeFixture(t, "orders.json", ordersCollection)
	out := filepath.Join(t.TempDir(), "shapes.json")

	require.NoError(t, HandlePostman([]string{"-q", "--format", "json", "--records", "-o", out, collection}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var report struct {
		EnvVars  []string                      `json:"env_vars"`
		Services map[string][]postman.VerbInfo `json:"services"`
		Records  []postman.Record              `json:"records"`
	}
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, []string{"baseUrl"}, report.EnvVars)
	require.Len(t, report.Services["orders"], 2)
	list := report.Services["orders"][0]
	assert.Equal(t, "GET", list.Verb)
	assert.Equal(t, map[string]string{"page": postman.TypeNumber}, list.QueryParams)
	create := report.Services["orders"][1]
	assert.Equal(t, "array", create.BodyAttributes["itemsObject"])
	assert.Equal(t, map[string]any{"rush": postman.TypeBoolean}, create.BodyAttributes["metaObject"])
	assert.Len(t, report.Records, 2)
}

func TestHandlePostman_UnknownService(t *testing.T) {
	collection := writeFixture(t, "orders.json", ordersCollection)
	err := HandlePostman([]string{"-q", "--service", "billing", collection})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service")
}

func TestHandlePostman_RejectsDefinition(t *testing.T) {
	spec := writeFixture(t, "petstore.json", `{"openapi": "3.0.0", "paths": {}}`)
	err := HandlePostman([]string{"-q", spec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a Postman collection")
}

func TestWritePostmanText(t *testing.T) {
	report := postmanReport{
		Services: map[string][]postman.VerbInfo{
			"orders": {{
				Path:           "{{baseUrl}}/orders",
				Verb:           "POST",
				QueryParams:    map[string]string{"dry": "string"},
				BodyAttributes: postman.Attributes{"qty": "number", "metaObject": postman.Attributes{"rush": "boolean"}},
			}},
		},
		Records: []postman.Record{{FilePath: "src/tests/createOrder", Verb: "POST", Path: "{{baseUrl}}/orders"}},
	}

	var buf bytes.Buffer
	writePostmanText(&buf, report)
	assert.Equal(t, `orders
  POST {{baseUrl}}/orders
    ?dry: string
    metaObject:
      rush: boolean
    qty: number
src/tests/createOrder  POST {{baseUrl}}/orders
`, buf.String())
}
