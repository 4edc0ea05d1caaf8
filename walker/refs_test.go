package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectRefs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "scalar document",
			src:  `hello`,
			want: []string{},
		},
		{
			name: "top-level ref",
			src:  `$ref: '#/components/schemas/Pet'`,
			want: []string{"#/components/schemas/Pet"},
		},
		{
			name: "nested in maps and lists",
			src: `
get:
  parameters:
    - $ref: '#/components/parameters/Limit'
  responses:
    '200':
      content:
        application/json:
          schema:
            type: array
            items:
              $ref: '#/components/schemas/Pet'
`,
			want: []string{"#/components/parameters/Limit", "#/components/schemas/Pet"},
		},
		{
			name: "duplicates collapse",
			src: `
a: {$ref: '#/definitions/X'}
b: [{$ref: '#/definitions/X'}]
`,
			want: []string{"#/definitions/X"},
		},
		{
			name: "non-string ref ignored",
			src: `
a: {$ref: 42}
b: {$ref: {nested: true}}
c: {$ref: garbage}
`,
			want: []string{"garbage"},
		},
		{
			name: "deeply nested",
			src:  `{a: {b: {c: {d: {e: [[{f: {$ref: '#/deep'}}]]}}}}}`,
			want: []string{"#/deep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := CollectRefs(mustDecode(t, tt.src))
			assert.Equal(t, tt.want, refs.Sorted())
		})
	}
}

func TestCollectRefs_Nil(t *testing.T) {
	refs := CollectRefs(nil)
	assert.Empty(t, refs)
	assert.False(t, refs.Has("#/x"))
}

func TestRefSet(t *testing.T) {
	s := make(RefSet)
	s.Add("b")
	s.Add("a")
	s.Add("b")

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
}

func TestCollectRefInfos(t *testing.T) {
	root := mustDecode(t, `
paths:
  /pets:
    get:
      responses:
        '200':
          schema:
            $ref: '#/definitions/Pet'
  /owners:
    post:
      parameters:
        - schema:
            $ref: '#/definitions/Pet'
`)

	infos := CollectRefInfos(root)
	assert.Equal(t, []RefInfo{
		{Ref: "#/definitions/Pet", SourcePath: "$.paths['/pets'].get.responses['200'].schema"},
		{Ref: "#/definitions/Pet", SourcePath: "$.paths['/owners'].post.parameters[0].schema"},
	}, infos)
}
