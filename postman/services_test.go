package postman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/users", "users"},
		{"/users/1", "users"},
		{"{{baseUrl}}/orders/7", "orders"},
		{"/", ""},
		{"users", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceOf(tt.path))
		})
	}
}

func TestGroupPathsByService(t *testing.T) {
	groups := GroupPathsByService([]string{"/users", "/orders", "/users/1", "/users/1/orders"})
	assert.Equal(t, map[string][]string{
		"users":  {"/users", "/users/1", "/users/1/orders"},
		"orders": {"/orders"},
	}, groups)
}

func TestMapVerbPathPairsToServices(t *testing.T) {
	records := []Record{
		{Path: "/users?id=1", Verb: "GET"},
		{Path: "/users/1", Verb: "DELETE"},
		{Path: "/orders", Verb: "POST"},
	}
	groups := GroupPathsByService(DistinctBasePaths(records))

	services := MapVerbPathPairsToServices(records, groups)
	require.Len(t, services, 2)
	require.Len(t, services["users"], 2)
	assert.Equal(t, "users", services["users"][0].RootPath)
	assert.Equal(t, map[string]string{"id": TypeNumber}, services["users"][0].QueryParams)
	assert.Equal(t, "DELETE", services["users"][1].Verb)
	require.Len(t, services["orders"], 1)
	assert.Equal(t, "orders", services["orders"][0].RootPath)
}

func TestTagServices(t *testing.T) {
	records := []Record{
		{Path: "/users?id=1", Verb: "GET"},
		{Path: "/orders", Verb: "POST"},
		{Path: "/unknown", Verb: "GET"},
	}
	groups := GroupPathsByService([]string{"/users", "/orders"})

	tagged := TagServices(records, groups)
	assert.Equal(t, "users", tagged[0].Service)
	assert.Equal(t, "orders", tagged[1].Service)
	assert.Empty(t, tagged[2].Service)
	assert.Empty(t, records[0].Service, "input must not be modified")
}

func TestDistinctBasePaths(t *testing.T) {
	records := []Record{{Path: "/b?x=1"}, {Path: "/a"}, {Path: "/b"}}
	assert.Equal(t, []string{"/b", "/a"}, DistinctBasePaths(records))
}

func TestExtractEnvVars(t *testing.T) {
	records := []Record{
		{Path: "{{baseUrl}}/users"},
		{Path: "{{baseUrl}}/orders"},
		{Path: "{{authHost}}/token"},
		{Path: "https://example.com/{{notPrefix}}"},
		{Path: "/plain"},
	}
	assert.Equal(t, []string{"baseUrl", "authHost"}, ExtractEnvVars(records))
	assert.Empty(t, ExtractEnvVars(nil))
}
