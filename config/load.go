package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const (
	EnvPageSize      = "CHIDB_PAGE_SIZE"
	EnvPageCacheSize = "CHIDB_PAGE_CACHE_SIZE"
	EnvLogLevel      = "CHIDB_LOG_LEVEL"
)

// Load reads an ini file with optional [storage] and [log] sections on top
// of the defaults.
//
//	[storage]
//	page_size       = 4096
//	page_cache_size = 20000
//
//	[log]
//	level = debug
func Load(path string) (*AppConfig, error) {
	c := New()
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *AppConfig) LoadFile(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return errors.Wrapf(err, "failed to load config '%s'", path)
	}

	if err := c.StorageConfig.parse(f.Section("storage")); err != nil {
		return errors.Wrapf(err, "config '%s'", path)
	}
	c.LogConfig.parse(f.Section("log"))
	return nil
}

// LoadEnv applies CHIDB_* variables, reading a .env file in the working
// directory first if one exists. Variables already set win over .env.
func (c *AppConfig) LoadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return errors.Wrap(err, "failed to load .env")
	}

	if v, ok := os.LookupEnv(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvPageSize)
		}
		c.StorageConfig.PageSize = n
	}
	if v, ok := os.LookupEnv(EnvPageCacheSize); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvPageCacheSize)
		}
		c.StorageConfig.PageCacheSize = uint32(n)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogConfig.Level = strings.ToLower(v)
	}
	return nil
}

func (c *StorageConfig) parse(section *ini.Section) error {
	if section.HasKey("page_size") {
		n, err := section.Key("page_size").Int()
		if err != nil {
			return errors.Wrap(err, "storage.page_size")
		}
		c.PageSize = n
	}
	if section.HasKey("page_cache_size") {
		n, err := section.Key("page_cache_size").Uint()
		if err != nil {
			return errors.Wrap(err, "storage.page_cache_size")
		}
		c.PageCacheSize = uint32(n)
	}
	return nil
}

func (c *LogConfig) parse(section *ini.Section) {
	if section.HasKey("level") {
		c.Level = strings.ToLower(section.Key("level").String())
	}
}
