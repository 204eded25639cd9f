package pager

import (
	"os"

	"go-chidb/pkg/customerrors"
	"go-chidb/util/helpers"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the size of the file header stored at the start of page 1.
	HeaderSize = 100

	DefaultPageSize = 1024
	MinPageSize     = 512
	// MaxPageSize keeps page offsets representable in the 16 bit fields of
	// the node header.
	MaxPageSize = 32768
)

var defaultOptions = Options{
	PageSize: DefaultPageSize,
	FileMode: 0644,
}

// Options represents the configuration options for the pager.
type Options struct {
	// PageSize used for all reads and writes. Must be a power of two
	// between MinPageSize and MaxPageSize.
	PageSize int `json:"page_size"`

	// FileMode used when the file has to be created.
	FileMode os.FileMode `json:"file_mode"`
}

func DefaultOptions() Options {
	return defaultOptions
}

func ValidatePageSize(size int) error {
	if size < MinPageSize || size > MaxPageSize || !helpers.IsPowerOfTwo(size) {
		return errors.Wrapf(customerrors.ErrInvalidPageSize, "page size %d", size)
	}
	return nil
}
