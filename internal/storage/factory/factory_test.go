package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/posts-feed/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("defaults to in-memory", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, storage.InMem, cfg.Type)
		assert.Nil(t, cfg.Pg)
		assert.Nil(t, cfg.Es)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "solr")

		_, err := LoadEnv()
		assert.ErrorContains(t, err, "invalid STORAGE_TYPE")
	})

	t.Run("postgres requires connection string", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "")

		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("postgres options", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "postgres://u:p@localhost:5432/posts")
		t.Setenv("PG_MAX_CONNS", "8")
		t.Setenv("PG_QUERY_TIMEOUT", "2s")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		require.NotNil(t, cfg.Pg)
		assert.Equal(t, int32(8), cfg.Pg.MaxConns)
		assert.Equal(t, "2s", cfg.Pg.QueryTimeout.String())
	})

	t.Run("elasticsearch addresses are trimmed", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", " http://es1:9200, ,http://es2:9200 ")
		t.Setenv("ES_INDEX_NAME", "")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		require.NotNil(t, cfg.Es)
		assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Es.Addresses)
		assert.Equal(t, "posts", cfg.Es.IndexName)
	})

	t.Run("elasticsearch requires addresses", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", "")

		_, err := LoadEnv()
		assert.Error(t, err)
	})
}

func TestNewBackend_InMem(t *testing.T) {
	b, err := NewBackend(context.Background(), StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer b.Close()

	assert.NotNil(t, b.Store)
	assert.True(t, b.Health.Healthy(context.Background()))
}

func TestNewBackend_Unsupported(t *testing.T) {
	_, err := NewBackend(context.Background(), StorageConfig{Type: storage.Type("solr")})
	assert.ErrorContains(t, err, "unsupported storer type: solr")
}
