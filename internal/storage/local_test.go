package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSanitizesAndRoundTrips(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, path, err := store.Save("../..//evil name?.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, " ")
	assert.Contains(t, path, name)

	f, err := store.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestRemoveDeletesFile(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, _, err := store.Save("doc.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	_, err = store.Open(name)
	assert.Error(t, err)
}
