package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/coordinator/journal"
	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/sqlstore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog", "--category", "smartphones")
	require.NoError(t, err)

	assert.Contains(t, out, "SmartPhone X Pro")
	assert.Contains(t, out, "899.99")
	assert.NotContains(t, out, "UltraBook Laptop")
}

func TestMigrateAndJournalCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "store.db")
	t.Setenv("STOREFRONT_REMOTE_DRIVER", "sqlite")
	t.Setenv("STOREFRONT_REMOTE_SQLITE_PATH", dbPath)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema applied (sqlite)")

	store, err := sqlstore.OpenSQLite(dbPath)
	require.NoError(t, err)
	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2, "migrate seeds the built-in catalog")

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &journal.Entry{
		RunID:         "run-7",
		Status:        journal.StatusCompleted,
		ErrorMessages: "[]",
		UpdatedAt:     time.Now().UTC(),
	}))
	require.NoError(t, store.Close())

	out, err = run(t, "journal", "run-7")
	require.NoError(t, err)
	assert.Contains(t, out, `"Status": "COMPLETED"`)

	_, err = run(t, "journal", "run-unknown")
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}

func TestMigrateRejectsHostedBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOREFRONT_REMOTE_DRIVER", "postgrest")

	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "remote.driver must be sqlite or postgres")
}
