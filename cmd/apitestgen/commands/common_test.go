package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apitestgen/definition"
)

const petstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://petstore.example.com
paths:
  /api/v1/pets:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /api/v1/pets/{id}:
    delete:
      responses:
        "204":
          description: Deleted
  /api/v1/stores:
    get:
      responses:
        "200":
          description: OK
components:
  schemas:
    Pet:
      type: object
    Orphan:
      type: object
`

const ordersCollection = `{
  "info": {"_postman_id": "abc", "name": "Orders"},
  "item": [
    {
      "name": "list orders",
      "request": {"method": "GET", "url": {"raw": "{{baseUrl}}/orders?page=1"}}
    },
    {
      "name": "create order",
      "request": {
        "method": "POST",
        "url": {"raw": "{{baseUrl}}/orders"},
        "body": {"mode": "raw", "raw": "{\"items\": [1], \"meta\": {\"rush\": true}}"}
      }
    }
  ]
}`

// writeFixture writes content to a file in a fresh temp dir and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarshalStructured(t *testing.T) {
	data := struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{"pets", 2}

	t.Run("json format", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatJSON)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"pets","count":2}`, string(out))
	})

	t.Run("yaml format keeps json names and order", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "name: pets\ncount: 2\n", string(out))
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := MarshalStructured(data, FormatText)
		assert.Error(t, err)
	})
}

func TestOutputStructured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, map[string]int{"a": 1}, FormatYAML))
	assert.Equal(t, "a: 1\n", buf.String())
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestNewLogger(t *testing.T) {
	assert.Nil(t, NewLogger(false))
	assert.NotNil(t, NewLogger(true))
}

func TestStringList(t *testing.T) {
	var s stringList
	require.NoError(t, s.Set("/pets, /stores"))
	require.NoError(t, s.Set("/users"))
	require.NoError(t, s.Set(" , "))
	assert.Equal(t, stringList{"/pets", "/stores", "/users"}, s)
	assert.Equal(t, "/pets,/stores,/users", s.String())
}

func TestUnitFileName(t *testing.T) {
	tests := []struct {
		name string
		unit definition.Unit
		want string
	}{
		{"path unit", definition.NewPathUnit("/pets", ""), "paths/pets.yaml"},
		{"root path unit", definition.NewPathUnit("/", ""), "paths/root.yaml"},
		{"verb unit with param", definition.NewVerbUnit("/pets/{id}", "DELETE", "/pets", ""), "verbs/pets_id.delete.yaml"},
		{"nested verb unit", definition.NewVerbUnit("/a/b/c", "GET", "/a", ""), "verbs/a_b_c.get.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitFileName(tt.unit))
		})
	}
}
