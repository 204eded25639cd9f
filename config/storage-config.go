package config

import (
	"os"

	"go-chidb/pkg/btree"
	"go-chidb/pkg/pager"
)

type StorageConfig struct {
	PageSize      int         `json:"page_size" validate:"min=512,max=32768"`
	PageCacheSize uint32      `json:"page_cache_size" validate:"gt=0"`
	FileMode      os.FileMode `json:"file_mode"`
}

func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		PageSize:      pager.DefaultPageSize,
		PageCacheSize: btree.DefaultPageCacheSize,
		FileMode:      0644,
	}
}

// BTreeOptions returns the options used when opening or creating a file.
func (c *StorageConfig) BTreeOptions() *btree.Options {
	return &btree.Options{
		PageSize:      c.PageSize,
		PageCacheSize: c.PageCacheSize,
		FileMode:      c.FileMode,
	}
}
