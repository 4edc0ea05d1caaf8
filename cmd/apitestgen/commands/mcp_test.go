package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMCP_Help(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))
}

func TestHandleMCP_RejectsArgs(t *testing.T) {
	err := HandleMCP([]string{"api.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes no arguments")
}

func TestHandleMCP_UnknownFlag(t *testing.T) {
	assert.Error(t, HandleMCP([]string{"--port", "8080"}))
}
