package config

import (
	"os"
	"path/filepath"
	"testing"

	"go-chidb/pkg/customerrors"
	"go-chidb/pkg/pager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIni(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chidb.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, pager.DefaultPageSize, c.StorageConfig.PageSize)
	assert.Equal(t, uint32(20000), c.StorageConfig.PageCacheSize)
	assert.Equal(t, "info", c.LogConfig.Level)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	path := writeIni(t, `
[storage]
page_size = 4096
page_cache_size = 100

[log]
level = DEBUG
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, c.StorageConfig.PageSize)
	assert.Equal(t, uint32(100), c.StorageConfig.PageCacheSize)
	assert.Equal(t, "debug", c.LogConfig.Level)
	assert.NoError(t, c.Validate())
}

func TestLoadPartial(t *testing.T) {
	path := writeIni(t, "[storage]\npage_size = 2048\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2048, c.StorageConfig.PageSize)
	assert.Equal(t, uint32(20000), c.StorageConfig.PageCacheSize)
	assert.Equal(t, "info", c.LogConfig.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	_, err = Load(writeIni(t, "[storage]\npage_size = big\n"))
	assert.Error(t, err)

	_, err = Load(writeIni(t, "[storage]\npage_cache_size = -1\n"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvPageSize, "8192")
	t.Setenv(EnvPageCacheSize, "42")
	t.Setenv(EnvLogLevel, "WARN")

	c := New()
	require.NoError(t, c.LoadEnv())
	assert.Equal(t, 8192, c.StorageConfig.PageSize)
	assert.Equal(t, uint32(42), c.StorageConfig.PageCacheSize)
	assert.Equal(t, "warn", c.LogConfig.Level)
	assert.NoError(t, c.Validate())
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv(EnvPageSize, "x")
	assert.Error(t, New().LoadEnv())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvPageSize, "512")

	c, err := Load(writeIni(t, "[storage]\npage_size = 4096\n"))
	require.NoError(t, err)
	require.NoError(t, c.LoadEnv())
	assert.Equal(t, 512, c.StorageConfig.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(c *AppConfig)
		sentinel error
	}{
		{name: "not power of two", modify: func(c *AppConfig) { c.StorageConfig.PageSize = 1000 }, sentinel: customerrors.ErrInvalidPageSize},
		{name: "too small", modify: func(c *AppConfig) { c.StorageConfig.PageSize = 256 }},
		{name: "too large", modify: func(c *AppConfig) { c.StorageConfig.PageSize = 65536 }},
		{name: "zero cache", modify: func(c *AppConfig) { c.StorageConfig.PageCacheSize = 0 }},
		{name: "unknown level", modify: func(c *AppConfig) { c.LogConfig.Level = "loud" }},
		{name: "missing section", modify: func(c *AppConfig) { c.LogConfig = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.modify(c)
			err := c.Validate()
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestBTreeOptions(t *testing.T) {
	c := New()
	c.StorageConfig.PageSize = 4096
	c.StorageConfig.PageCacheSize = 7

	opts := c.StorageConfig.BTreeOptions()
	assert.Equal(t, 4096, opts.PageSize)
	assert.Equal(t, uint32(7), opts.PageCacheSize)
	assert.Equal(t, os.FileMode(0644), opts.FileMode)
}
