package docutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestDecode_PreservesOrder(t *testing.T) {
	node, err := DecodeString(`
paths:
  /zebras: {}
  /apes: {}
  /monkeys: {}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"/zebras", "/apes", "/monkeys"}, Keys(Get(node, "paths")))
}

func TestDecode_JSON(t *testing.T) {
	node, err := DecodeString(`{"openapi": "3.0.0", "paths": {"/b": {}, "/a": {}}}`)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", ScalarValue(Get(node, "openapi")))
	assert.Equal(t, []string{"/b", "/a"}, Keys(Get(node, "paths")))
}

func TestDecode_Empty(t *testing.T) {
	node, err := DecodeString("  \n")
	require.NoError(t, err)
	assert.True(t, IsMapping(node))
	assert.Empty(t, node.Content)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := DecodeString("key: [unclosed")
	assert.Error(t, err)
}

func TestDecode_ExpandsAliases(t *testing.T) {
	node, err := DecodeString(`
shared: &common
  type: string
first:
  schema: *common
`)
	require.NoError(t, err)

	schema := Lookup(node, "first", "schema")
	require.NotNil(t, schema)
	assert.Equal(t, yaml.MappingNode, schema.Kind)
	assert.Equal(t, "string", ScalarValue(Get(schema, "type")))

	out, err := Encode(Get(node, "first"))
	require.NoError(t, err)
	assert.NotContains(t, out, "*common")
}

func TestClone_IsDeep(t *testing.T) {
	node, err := DecodeString(`a: {b: 1}`)
	require.NoError(t, err)

	cp := Clone(node)
	Set(Get(cp, "a"), "c", String("2"))

	assert.Equal(t, []string{"b"}, Keys(Get(node, "a")))
	assert.Equal(t, []string{"b", "c"}, Keys(Get(cp, "a")))
	assert.Nil(t, Clone(nil))
}

func TestSetDelete(t *testing.T) {
	m := NewMapping()
	Set(m, "openapi", String("3.0.0"))
	Set(m, "paths", NewMapping())
	Set(m, "openapi", String("3.1.0"))

	assert.Equal(t, []string{"openapi", "paths"}, Keys(m))
	assert.Equal(t, "3.1.0", ScalarValue(Get(m, "openapi")))

	assert.True(t, Delete(m, "paths"))
	assert.False(t, Delete(m, "paths"))
	assert.False(t, Has(m, "paths"))
	assert.Equal(t, []string{"openapi"}, Keys(m))
}

func TestHelpers_NonMapping(t *testing.T) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	assert.Nil(t, Get(seq, "x"))
	assert.Nil(t, Keys(seq))
	assert.False(t, Delete(seq, "x"))
	Set(seq, "x", String("y"))
	assert.Empty(t, seq.Content)
	assert.True(t, IsSequence(seq))
	assert.Equal(t, "", ScalarValue(seq))
	assert.Nil(t, Lookup(nil, "a"))
}

func TestEach(t *testing.T) {
	node, err := DecodeString(`{x: 1, y: 2}`)
	require.NoError(t, err)

	var seen []string
	Each(node, func(key string, value *yaml.Node) {
		seen = append(seen, key+"="+value.Value)
	})
	assert.Equal(t, []string{"x=1", "y=2"}, seen)
}

func TestEncodeToValueRoundTrip(t *testing.T) {
	node, err := DecodeString(`{servers: [{url: "https://api.example.com"}], count: 2}`)
	require.NoError(t, err)

	text, err := Encode(node)
	require.NoError(t, err)

	back, err := DecodeString(text)
	require.NoError(t, err)

	v, err := ToValue(back)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"servers": []any{map[string]any{"url": "https://api.example.com"}},
		"count":   2,
	}, v)
}
