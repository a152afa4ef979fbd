package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

func TestModels(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.models = []domain.Model{
		{Name: "gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash"},
		{Name: "gemini-2.5-pro"},
	}

	out, err := execute("models")

	require.NoError(t, err)
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, "Gemini 2.5 Flash")
	assert.Contains(t, out, "gemini-2.5-pro")
}

func TestModels_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute("models")

	require.NoError(t, err)
	assert.Contains(t, out, "No models found.")
}

func TestModels_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.models = []domain.Model{{Name: "gemini-2.5-flash"}}

	out, err := execute("models", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"name": "gemini-2.5-flash"`)
}
