package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apitestgen/processor"
	"github.com/erraggy/apitestgen/source"
)

func TestSetupAssembleFlags(t *testing.T) {
	fs, flags := SetupAssembleFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "", flags.Output)
		assert.False(t, flags.NoFilter)
		assert.Equal(t, processor.DefaultConcurrency(), flags.Concurrency)
		assert.Equal(t, source.DefaultTimeout, flags.Timeout)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-o", "out", "--no-filter", "-c", "3", "--timeout", "5s", "--endpoint", "/pets", "api.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "out", flags.Output)
		assert.True(t, flags.NoFilter)
		assert.Equal(t, 3, flags.Concurrency)
		assert.Equal(t, 5*time.Second, flags.Timeout)
		assert.Equal(t, stringList{"/pets"}, flags.Endpoints)
	})
}

func TestHandleAssemble_NoArgs(t *testing.T) {
	assert.Error(t, HandleAssemble([]string{}))
}

func TestHandleAssemble_Help(t *testing.T) {
	assert.NoError(t, HandleAssemble([]string{"--help"}))
}

func TestHandleAssemble_InvalidConcurrency(t *testing.T) {
	spec := writeFixture(t, "petstore.yaml", petstoreYAML)
	err := HandleAssemble([]string{"-q", "-c", "0", spec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}

func TestHandleAssemble_OutputDir(t *testing.T) {
	spec := writeFixture(t, "petstore.yaml", petstoreYAML)
	out := filepath.Join(t.TempDir(), "defs")

	require.NoError(t, HandleAssemble([]string{"-q", "-c", "2", "-o", out, spec}))

	for _, name := range []string{
		"paths/pets.yaml",
		"paths/stores.yaml",
		"verbs/pets.get.yaml",
		"verbs/pets_id.delete.yaml",
		"verbs/stores.get.yaml",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	stores, err := os.ReadFile(filepath.Join(out, "paths/stores.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(stores), "https://petstore.example.com")
	assert.Contains(t, string(stores), "/api/v1/stores")
	assert.NotContains(t, string(stores), "/api/v1/pets")
	assert.NotContains(t, string(stores), "Orphan")

	env, err := os.ReadFile(filepath.Join(out, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "BASEURL=\"https://petstore.example.com\"\n", string(env))
}

func TestHandleAssemble_NoFilterKeepsSchemas(t *testing.T) {
	spec := writeFixture(t, "petstore.yaml", petstoreYAML)
	out := filepath.Join(t.TempDir(), "defs")

	require.NoError(t, HandleAssemble([]string{"-q", "--no-filter", "--endpoint", "/stores", "-o", out, spec}))

	data, err := os.ReadFile(filepath.Join(out, "verbs/stores.get.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Orphan")
	assert.NoFileExists(t, filepath.Join(out, "paths/pets.yaml"))
}

func TestUniqueFileName(t *testing.T) {
	used := make(map[string]bool)
	names := []string{
		"paths/pets.yaml",
		"paths/pets.yaml",
		"paths/pets-2.yaml",
		"paths/pets.yaml",
		"verbs/pets.get.yaml",
		"verbs/pets.get.yaml",
	}
	var got []string
	for _, name := range names {
		got = append(got, uniqueFileName(used, name))
	}
	assert.Equal(t, []string{
		"paths/pets.yaml",
		"paths/pets-2.yaml",
		"paths/pets-2-2.yaml",
		"paths/pets-3.yaml",
		"verbs/pets.get.yaml",
		"verbs/pets.get-2.yaml",
	}, got)
}
