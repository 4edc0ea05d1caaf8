package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apitestgen/internal/docutil"
)

func decode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	node, err := docutil.DecodeString(src)
	require.NoError(t, err)
	return node
}

func encode(t *testing.T, node *yaml.Node) string {
	t.Helper()
	out, err := docutil.Encode(node)
	require.NoError(t, err)
	return out
}

func schemaNames(t *testing.T, doc *yaml.Node, strategy Strategy) []string {
	t.Helper()
	return docutil.Keys(strategy.Container(doc))
}

func TestSchemas_OAS3TransitiveClosure(t *testing.T) {
	doc := decode(t, `
openapi: 3.0.0
info: {title: T, version: "1"}
paths:
  /a:
    get:
      responses:
        '200':
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/A'
components:
  securitySchemes:
    key: {type: apiKey, in: header, name: X-Key}
  schemas:
    D:
      type: string
    C:
      type: integer
    B:
      type: object
      properties:
        c:
          type: array
          items:
            $ref: '#/components/schemas/C'
    A:
      type: object
      properties:
        b:
          $ref: '#/components/schemas/B'
`)

	res := Filter(doc)
	assert.Equal(t, "oas3", res.Dialect)
	assert.Equal(t, []string{"C", "B", "A"}, res.Kept)
	assert.Equal(t, []string{"D"}, res.Removed)
	assert.Empty(t, res.Dangling)

	assert.Equal(t, []string{"C", "B", "A"}, schemaNames(t, res.Document, OAS3))
	assert.NotNil(t, docutil.Lookup(res.Document, "components", "securitySchemes", "key"))
	assert.Equal(t, []string{"openapi", "info", "paths", "components"}, docutil.Keys(res.Document))
}

func TestSchemas_OAS2TransitiveClosure(t *testing.T) {
	doc := decode(t, `
swagger: "2.0"
info: {title: T, version: "1"}
paths:
  /pets:
    post:
      parameters:
        - in: body
          name: body
          schema:
            $ref: '#/definitions/Pet'
      responses:
        '200':
          description: ok
definitions:
  Pet:
    properties:
      owner:
        $ref: '#/definitions/Owner'
  Owner:
    properties:
      address:
        $ref: '#/definitions/Address'
  Address:
    type: object
  Unused:
    type: object
parameters:
  limit: {name: limit, in: query, type: integer}
`)

	res := Filter(doc)
	assert.Equal(t, "oas2", res.Dialect)
	assert.Equal(t, []string{"Pet", "Owner", "Address"}, res.Kept)
	assert.Equal(t, []string{"Unused"}, res.Removed)
	assert.NotNil(t, docutil.Get(res.Document, "parameters"))
}

func TestSchemas_Cycle(t *testing.T) {
	doc := decode(t, `
openapi: 3.1.0
paths:
  /a:
    get:
      responses:
        '200':
          content:
            application/json:
              schema: {$ref: '#/components/schemas/A'}
components:
  schemas:
    A:
      properties:
        b: {$ref: '#/components/schemas/B'}
    B:
      properties:
        a: {$ref: '#/components/schemas/A'}
        self: {$ref: '#/components/schemas/B'}
`)

	res := Filter(doc)
	assert.Equal(t, []string{"A", "B"}, res.Kept)
	assert.Empty(t, res.Removed)
}

func TestSchemas_Identity(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "empty components",
			src: `
openapi: 3.0.0
paths:
  /a: {get: {responses: {'200': {description: ok}}}}
components: {}
`,
		},
		{
			name: "components without schemas",
			src: `
openapi: 3.0.0
paths:
  /a: {get: {responses: {'200': {$ref: '#/components/responses/Ok'}}}}
components:
  responses:
    Ok: {description: ok}
`,
		},
		{
			name: "no components",
			src: `
openapi: 3.0.0
paths: {}
`,
		},
		{
			name: "swagger without definitions",
			src: `
swagger: "2.0"
paths:
  /a: {get: {responses: {'200': {description: ok}}}}
`,
		},
		{
			name: "no version marker",
			src: `
paths:
  /a: {get: {}}
definitions:
  Unused: {type: string}
components:
  schemas:
    Unused: {type: string}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, tt.src)
			before := encode(t, doc)

			out := Schemas(doc)
			assert.Equal(t, before, encode(t, out))
			assert.Equal(t, before, encode(t, doc), "input must not be modified")
			assert.NotSame(t, doc, out)
		})
	}
}

func TestSchemas_ZeroPaths(t *testing.T) {
	t.Run("no paths key returns input unchanged", func(t *testing.T) {
		doc := decode(t, `
openapi: 3.0.0
components:
  schemas:
    A: {type: string}
    B: {type: integer}
`)
		before := encode(t, doc)

		res := Filter(doc)
		assert.Empty(t, res.Kept)
		assert.Empty(t, res.Removed)
		assert.Equal(t, before, encode(t, res.Document))
		assert.Equal(t, []string{"A", "B"}, docutil.Keys(docutil.Lookup(res.Document, "components", "schemas")))
	})

	t.Run("empty paths map prunes everything", func(t *testing.T) {
		doc := decode(t, `
openapi: 3.0.0
paths: {}
components:
  schemas:
    A: {type: string}
`)

		res := Filter(doc)
		assert.Empty(t, res.Kept)
		assert.Equal(t, []string{"A"}, res.Removed)
		schemas := docutil.Lookup(res.Document, "components", "schemas")
		require.NotNil(t, schemas)
		assert.Empty(t, docutil.Keys(schemas))
	})
}

func TestSchemas_MalformedAndDanglingRefs(t *testing.T) {
	doc := decode(t, `
openapi: 3.0.0
paths:
  /a:
    get:
      parameters:
        - $ref: '#/components/parameters/Limit'
      responses:
        '200':
          content:
            application/json:
              schema:
                oneOf:
                  - $ref: '#/components/schemas/Missing'
                  - $ref: 'not a ref at all'
                  - $ref: 'other.yaml#/components/schemas/A'
                  - $ref: '#/components/schemas/'
                  - $ref: '#/definitions/A'
                  - $ref: '#/components/schemas/A'
components:
  parameters:
    Limit: {name: limit, in: query}
  schemas:
    A:
      properties:
        ghost: {$ref: '#/components/schemas/Ghost'}
    B: {type: string}
`)

	res := Filter(doc)
	assert.Equal(t, []string{"A"}, res.Kept)
	assert.Equal(t, []string{"B"}, res.Removed)
	assert.Equal(t, []string{"#/components/schemas/Ghost", "#/components/schemas/Missing"}, res.Dangling)
	assert.NotNil(t, docutil.Lookup(res.Document, "components", "parameters", "Limit"))
}

func TestSchemas_DuplicateRefsKeptOnce(t *testing.T) {
	doc := decode(t, `
swagger: "2.0"
paths:
  /a:
    get:
      responses:
        '200': {schema: {$ref: '#/definitions/Item'}}
  /b:
    get:
      responses:
        '200': {schema: {$ref: '#/definitions/Item'}}
definitions:
  Item: {type: object}
  Unused: {type: object}
`)

	out := Schemas(doc)
	assert.Equal(t, []string{"Item"}, schemaNames(t, out, OAS2))
}

func TestSchemas_DeepNesting(t *testing.T) {
	doc := decode(t, `
openapi: 3.0.0
paths:
  /a:
    get:
      responses:
        '200':
          content:
            application/json:
              schema:
                allOf:
                  - type: object
                    properties:
                      deep:
                        type: array
                        items:
                          anyOf:
                            - $ref: '#/components/schemas/L1'
components:
  schemas:
    L1: {additionalProperties: {$ref: '#/components/schemas/L2'}}
    L2: {items: {items: {$ref: '#/components/schemas/L3'}}}
    L3: {not: {$ref: '#/components/schemas/L4'}}
    L4: {type: string}
    Other: {type: string}
`)

	res := Filter(doc)
	assert.Equal(t, []string{"L1", "L2", "L3", "L4"}, res.Kept)
	assert.Equal(t, []string{"Other"}, res.Removed)
}

func TestSchemas_InputUnchanged(t *testing.T) {
	doc := decode(t, `
openapi: 3.0.0
paths:
  /a: {get: {responses: {'200': {content: {application/json: {schema: {$ref: '#/components/schemas/A'}}}}}}}
components:
  schemas:
    A: {type: string}
    B: {type: string}
`)
	before := encode(t, doc)

	out := Schemas(doc)
	assert.Equal(t, before, encode(t, doc))
	assert.Equal(t, []string{"A"}, schemaNames(t, out, OAS3))

	// The output is a deep copy.
	docutil.Set(docutil.Lookup(out, "components", "schemas", "A"), "type", docutil.String("integer"))
	assert.Equal(t, "string", docutil.ScalarValue(docutil.Lookup(doc, "components", "schemas", "A", "type")))
}

func TestSchemaName(t *testing.T) {
	const prefix = "#/components/schemas/"
	tests := []struct {
		ref  string
		want string
	}{
		{"#/components/schemas/Pet", "Pet"},
		{"#/components/schemas/Pet/properties/id", "Pet"},
		{"#/components/schemas/Pet%20Store", "Pet Store"},
		{"%23/components/schemas/Pet", "Pet"},
		{"#/components/schemas/a~1b", "a/b"},
		{"#/components/schemas/a~0b", "a~b"},
		{"#/components/schemas/", ""},
		{"#/definitions/Pet", ""},
		{"Pet.yaml", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaName(tt.ref, prefix))
		})
	}
}

func TestDetectStrategy(t *testing.T) {
	assert.Equal(t, OAS3, DetectStrategy(decode(t, `openapi: 3.0.0`)))
	assert.Equal(t, OAS2, DetectStrategy(decode(t, `swagger: "2.0"`)))
	assert.Nil(t, DetectStrategy(decode(t, `info: {}`)))
	assert.Nil(t, DetectStrategy(nil))
}
