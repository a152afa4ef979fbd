package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

func TestStoreCmd_HasSubcommands(t *testing.T) {
	commands := storeCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"create", "list", "get", "delete"}, names)
}

func TestStoreCreate(t *testing.T) {
	ts := setupTestServices(t)
	ts.stores.store = &domain.Store{Name: "fileSearchStores/abc", DisplayName: "Docs"}

	out, err := execute("store", "create", "Docs")

	require.NoError(t, err)
	assert.Equal(t, "Docs", ts.stores.created)
	assert.Contains(t, out, "Created store abc")
}

func TestStoreCreate_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.stores.store = &domain.Store{Name: "fileSearchStores/abc"}

	out, err := execute("store", "create", "--json")

	require.NoError(t, err)
	assert.Empty(t, ts.stores.created)
	assert.Contains(t, out, `"name": "fileSearchStores/abc"`)
}

func TestStoreList(t *testing.T) {
	t.Run("prints stores and next page", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.stores.list = &domain.StoreList{
			Stores: []domain.Store{{
				Name:                  "fileSearchStores/abc",
				DisplayName:           "Docs",
				ActiveDocumentsCount:  2,
				PendingDocumentsCount: 1,
			}},
			NextPageToken: "tok",
		}

		out, err := execute("store", "list", "--page-size", "5")

		require.NoError(t, err)
		assert.Equal(t, 5, ts.stores.page.PageSize)
		assert.Contains(t, out, "abc")
		assert.Contains(t, out, "Name: Docs")
		assert.Contains(t, out, "2 active, 1 pending, 0 failed")
		assert.Contains(t, out, "--page-token tok")
	})

	t.Run("empty", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.stores.list = &domain.StoreList{Stores: []domain.Store{}}

		out, err := execute("store", "list")

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPageSize, ts.stores.page.PageSize)
		assert.Contains(t, out, "No stores found.")
	})
}

func TestStoreGet(t *testing.T) {
	ts := setupTestServices(t)
	ts.stores.store = &domain.Store{Name: "fileSearchStores/abc", SizeBytes: 2048}

	out, err := execute("store", "get", "abc")

	require.NoError(t, err)
	assert.Contains(t, out, "Store: abc")
	assert.Contains(t, out, "2.0 KiB")
}

func TestStoreGet_RequiresID(t *testing.T) {
	setupTestServices(t)

	_, err := execute("store", "get")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestStoreDelete(t *testing.T) {
	t.Run("force", func(t *testing.T) {
		ts := setupTestServices(t)

		out, err := execute("store", "delete", "abc", "--force")

		require.NoError(t, err)
		assert.Equal(t, "abc", ts.stores.deleted)
		assert.True(t, ts.stores.force)
		assert.Contains(t, out, "Deleted store abc")
	})

	t.Run("error is wrapped", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.stores.err = domain.ErrNotFound

		_, err := execute("store", "delete", "abc")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.False(t, ts.stores.force)
	})
}

func TestStoreCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	storeService = nil
	err := runStoreList(storeListCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store service not configured")
}
