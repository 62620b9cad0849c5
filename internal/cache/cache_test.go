package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key("rule", "他于今天去世。")
	require.Equal(t, a, Key("rule", "他于今天去世。"))
	require.NotEqual(t, a, Key("http", "他于今天去世。"))
	require.NotEqual(t, a, Key("rule", "他于今天去世"))
	// The separator keeps namespace and text from bleeding into each other
	require.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, found := c.Get("k")
	require.False(t, found)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, found := c.Get("k")
	require.True(t, found)
	require.Equal(t, []byte("v"), got)
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	require.False(t, found)

	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Clear())
	require.Equal(t, 0, c.Len())
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("k")
	require.False(t, found)
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := Key("rule", "text")

	require.NoError(t, c.Set(key, []byte(`["a","b"]`), 0))
	got, found := c.Get(key)
	require.True(t, found)
	require.Equal(t, []byte(`["a","b"]`), got)

	// Entries are sharded below the cache root
	_, err := os.Stat(filepath.Join(dir, key[len(key)-2:], key+".cache"))
	require.NoError(t, err)

	// A second cache over the same directory sees the entry
	got, found = NewDiskCache(dir, time.Hour).Get(key)
	require.True(t, found)
	require.Equal(t, []byte(`["a","b"]`), got)

	require.NoError(t, c.Delete(key))
	require.NoError(t, c.Delete(key))
	_, found = c.Get(key)
	require.False(t, found)
}

func TestDiskCacheExpiredAndCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	require.NoError(t, c.Set("old", []byte("v"), -time.Second))
	_, found := c.Get("old")
	require.False(t, found)
	_, err := os.Stat(c.path("old"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.MkdirAll(filepath.Dir(c.path("bad")), 0755))
	require.NoError(t, os.WriteFile(c.path("bad"), []byte("{not json"), 0644))
	_, found = c.Get("bad")
	require.False(t, found)

	require.NoError(t, c.Clear())
	_, err = os.Stat(dir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	key := Key("rule", "text")

	require.NoError(t, NewDiskCache(dir, time.Hour).Set(key, []byte("v"), 0))

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := c.Get(key)
	require.True(t, found)
	require.Equal(t, []byte("v"), got)

	got, found = c.memory.Get(key)
	require.True(t, found)
	require.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(key))
	_, found = c.Get(key)
	require.False(t, found)
}

func TestLayeredCacheSetWritesBothLayers(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)
	require.NoError(t, c.Set("k", []byte("v"), 0))

	_, found := c.memory.Get("k")
	require.True(t, found)
	_, found = c.disk.Get("k")
	require.True(t, found)

	require.NoError(t, c.Clear())
	_, found = c.Get("k")
	require.False(t, found)
}
