package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("POSTS_FEED_TEST_KEY=from_file\n"), 0o600))

	t.Setenv(PathVar, "")
	t.Setenv("POSTS_FEED_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("POSTS_FEED_TEST_KEY"))

	require.NoError(t, LoadDotEnv("local", path))
	assert.Equal(t, "from_file", os.Getenv("POSTS_FEED_TEST_KEY"))
}

func TestLoadDotEnv_EnvPathOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.env")
	require.NoError(t, os.WriteFile(path, []byte("POSTS_FEED_OVERRIDE=yes\n"), 0o600))

	t.Setenv(PathVar, path)
	t.Setenv("POSTS_FEED_OVERRIDE", "")
	require.NoError(t, os.Unsetenv("POSTS_FEED_OVERRIDE"))

	require.NoError(t, LoadDotEnv("local", filepath.Join(dir, "missing.env")))
	assert.Equal(t, "yes", os.Getenv("POSTS_FEED_OVERRIDE"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv(PathVar, "")
	missing := filepath.Join(t.TempDir(), "nope.env")

	assert.Error(t, LoadDotEnv("local", missing))
	assert.NoError(t, LoadDotEnv("production", missing))
}
