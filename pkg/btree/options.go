package btree

import (
	"os"

	"go-chidb/pkg/pager"
)

var defaultOptions = Options{
	PageSize:      pager.DefaultPageSize,
	PageCacheSize: DefaultPageCacheSize,
	FileMode:      0644,
}

// Options represents the configuration used when a B-Tree file is created.
// Existing files keep the page size recorded in their header.
type Options struct {
	// PageSize of a new file. Must be a power of two between
	// pager.MinPageSize and pager.MaxPageSize.
	PageSize int `json:"page_size"`

	// PageCacheSize is stored in the header of a new file as a hint for
	// the page cache. It is not enforced.
	PageCacheSize uint32 `json:"page_cache_size"`

	FileMode os.FileMode `json:"file_mode"`
}

func DefaultOptions() Options {
	return defaultOptions
}

// withDefaults fills zero fields from defaultOptions.
func (o Options) withDefaults() Options {
	if o.PageSize == 0 {
		o.PageSize = defaultOptions.PageSize
	}
	if o.PageCacheSize == 0 {
		o.PageCacheSize = defaultOptions.PageCacheSize
	}
	if o.FileMode == 0 {
		o.FileMode = defaultOptions.FileMode
	}
	return o
}
