package btree

import (
	"go-chidb/pkg/customerrors"

	"github.com/pkg/errors"
)

// NodeType is the first byte of every node header. The values are fixed by
// the file format.
type NodeType byte

const (
	InternalTable NodeType = 0x05
	LeafTable     NodeType = 0x0D
	InternalIndex NodeType = 0x02
	LeafIndex     NodeType = 0x0A
)

// NodeTypeFromByte decodes a node type byte. Any value other than the four
// defined kinds is an ErrUnrecognizedNodeType.
func NodeTypeFromByte(b byte) (NodeType, error) {
	switch t := NodeType(b); t {
	case InternalTable, LeafTable, InternalIndex, LeafIndex:
		return t, nil
	}
	return 0, errors.Wrapf(customerrors.ErrUnrecognizedNodeType, "type byte 0x%02X", b)
}

// ParseNodeType accepts the names returned by String, e.g. "leaf table".
func ParseNodeType(name string) (NodeType, error) {
	for _, t := range []NodeType{InternalTable, LeafTable, InternalIndex, LeafIndex} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, errors.Wrapf(customerrors.ErrUnrecognizedNodeType, "name %q", name)
}

func (t NodeType) Valid() bool {
	_, err := NodeTypeFromByte(byte(t))
	return err == nil
}

func (t NodeType) IsLeaf() bool {
	return t == LeafTable || t == LeafIndex
}

func (t NodeType) IsTable() bool {
	return t == LeafTable || t == InternalTable
}

func (t NodeType) String() string {
	switch t {
	case InternalTable:
		return "internal table"
	case LeafTable:
		return "leaf table"
	case InternalIndex:
		return "internal index"
	case LeafIndex:
		return "leaf index"
	}
	return "<invalid type>"
}
