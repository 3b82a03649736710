package cache

// Test Plan for the result cache:
// - Key is 64 lowercase hex characters and deterministic
// - Different sources hash to different keys
// - Get on an empty cache misses without error
// - Put then Get round-trips the stored bytes
// - A fresh Cache over the same directory still finds persisted entries
// - Put with the same key replaces rather than duplicates
// - Len counts persisted entries
// - Open with empty capacity falls back to the default

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T, dir string) *Cache {
	t.Helper()
	c, err := Open(dir, 8)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKey(t *testing.T) {
	t.Parallel()

	key := Key([]byte("import os\n"))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), key)
	assert.Equal(t, key, Key([]byte("import os\n")))
	assert.NotEqual(t, key, Key([]byte("import sys\n")))
	assert.NotEmpty(t, Key(nil))
}

func TestGetMiss(t *testing.T) {
	t.Parallel()

	c := openTestCache(t, t.TempDir())
	data, ok, err := c.Get(Key([]byte("never stored")))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestPutGet(t *testing.T) {
	t.Parallel()

	c := openTestCache(t, t.TempDir())
	key := Key([]byte("x = 1\n"))
	result := []byte(`{"success":true}`)

	require.NoError(t, c.Put(key, result))

	data, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result, data)
}

func TestPersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := Key([]byte("y = 2\n"))
	result := []byte(`{"success":true,"findings":[]}`)

	first, err := Open(dir, 8)
	require.NoError(t, err)
	require.NoError(t, first.Put(key, result))
	require.NoError(t, first.Close())

	// A new instance has a cold memory tier; the hit comes from sqlite.
	second := openTestCache(t, dir)
	data, ok, err := second.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result, data)
}

func TestPutReplaces(t *testing.T) {
	t.Parallel()

	c := openTestCache(t, t.TempDir())
	key := Key([]byte("z = 3\n"))

	require.NoError(t, c.Put(key, []byte("one")))
	require.NoError(t, c.Put(key, []byte("two")))

	count, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("two"), data)
}

func TestLen(t *testing.T) {
	t.Parallel()

	c := openTestCache(t, t.TempDir())
	count, err := c.Len()
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, c.Put(Key([]byte("a")), []byte("1")))
	require.NoError(t, c.Put(Key([]byte("b")), []byte("2")))

	count, err = c.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestOpenDefaultCapacity(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := Open(dir, 0)
	require.NoError(t, err)
	defer c.Close()

	assert.FileExists(t, filepath.Join(dir, "results.db"))
	require.NoError(t, c.Put(Key([]byte("cap")), []byte("v")))
}
