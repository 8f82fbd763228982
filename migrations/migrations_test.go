package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceListsFirstMigration(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	_, err = src.Next(first)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestUpAndDownArePaired(t *testing.T) {
	up, err := fs.ReadFile(files, "0001_custom_accounting.up.sql")
	require.NoError(t, err)
	down, err := fs.ReadFile(files, "0001_custom_accounting.down.sql")
	require.NoError(t, err)

	for _, table := range []string{"companies", "accounts", "cost_centers", "gl_entries", "budgets", "idempotency_keys"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
		assert.Contains(t, string(down), "DROP TABLE IF EXISTS "+table+";")
	}
	assert.True(t, strings.Contains(string(up), "voucher_no TEXT NOT NULL"))
}
