// Package customerrors defines the error kinds returned by the pager and
// B-Tree layers. Callers should compare with errors.Is, since most of them are
// returned wrapped with extra context.
package customerrors

import (
	"errors"
)

var (
	// ErrCorruptHeader is returned when an existing file does not start with
	// the expected magic bytes or carries an unusable page size.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrMissingHeader is returned when the file is shorter than the fixed
	// header size. It signals truncation, not garbage content.
	ErrMissingHeader = errors.New("missing header")

	// ErrInvalidPageNumber is returned for page 0 or for pages past the
	// highest page ever allocated.
	ErrInvalidPageNumber = errors.New("invalid page number")

	// ErrOutOfMemory is returned when a page buffer is too small to hold the
	// structure being built in it.
	ErrOutOfMemory = errors.New("could not allocate memory")

	// ErrUnrecognizedNodeType is returned when a node type byte matches none
	// of the defined node kinds.
	ErrUnrecognizedNodeType = errors.New("unrecognized node type")

	// ErrCorruptNode is returned when a node header decodes but its offsets
	// contradict each other.
	ErrCorruptNode = errors.New("corrupt node")

	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidCellNumber is returned when a cell-offset array index is past
	// the cells stored in a node.
	ErrInvalidCellNumber = errors.New("invalid cell number")
)
