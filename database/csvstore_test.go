package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediCore/database"
)

func TestStoreReadWrite(t *testing.T) {
	t.Run("round trips rows behind a header", func(t *testing.T) {
		store, err := database.InitStore(t.TempDir())
		require.NoError(t, err)

		header := []string{"name", "stock"}
		rows := [][]string{
			{"Paracetamol", "100"},
			{"Ibuprofen", "50"},
		}
		require.NoError(t, store.WriteTable("medications", header, rows))

		got, err := store.ReadTable("medications")
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("missing table reads as empty", func(t *testing.T) {
		store, err := database.InitStore(t.TempDir())
		require.NoError(t, err)

		rows, err := store.ReadTable("nothing")
		require.NoError(t, err)
		assert.Nil(t, rows)
	})

	t.Run("table with only a header reads as empty", func(t *testing.T) {
		store, err := database.InitStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.WriteTable("medications", []string{"name"}, nil))

		rows, err := store.ReadTable("medications")
		require.NoError(t, err)
		assert.Nil(t, rows)
	})

	t.Run("rewrite replaces earlier rows", func(t *testing.T) {
		store, err := database.InitStore(t.TempDir())
		require.NoError(t, err)

		header := []string{"name"}
		require.NoError(t, store.WriteTable("medications", header, [][]string{{"Old"}}))
		require.NoError(t, store.WriteTable("medications", header, [][]string{{"New"}}))

		rows, err := store.ReadTable("medications")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"New"}}, rows)
	})

	t.Run("fields survive commas and quotes", func(t *testing.T) {
		store, err := database.InitStore(t.TempDir())
		require.NoError(t, err)

		rows := [][]string{{"P0001", `took "two" pills, daily`}}
		require.NoError(t, store.WriteTable("notes", []string{"id", "note"}, rows))

		got, err := store.ReadTable("notes")
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		store, err := database.InitStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.WriteTable("medications", []string{"name"}, [][]string{{"Aspirin"}}))

		matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("creates the data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		_, err := database.InitStore(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
