package btree

import (
	"go-chidb/pkg/customerrors"
	"go-chidb/pkg/pager"

	"github.com/pkg/errors"
)

// node header layout, relative to the page offset, little endian
const (
	nodeType        = 0
	nodeFreeOffset  = 1
	nodeNCells      = 3
	nodeCellsOffset = 5
	nodeRightPage   = 7

	// NodeHeaderSize is the fixed part of the node header. The cell offset
	// array starts right after it.
	NodeHeaderSize = 9

	// CellOffsetSize is the size of one entry of the cell offset array.
	CellOffsetSize = 2
)

// Node is an in-memory copy of a node header. Changes to its scalar fields
// only reach the file through BTree.WriteNode. The cell offset array and the
// cells themselves live on the page and are modified there directly.
type Node struct {
	// page the node was created on or loaded from
	page *pager.MemPage

	typ NodeType

	// freeOffset is where free space begins, it must follow the growth of
	// the cell offset array.
	freeOffset uint16

	nCells uint16

	// cellsOffset is the page offset where the cell area begins, page size
	// when the node holds no cells.
	cellsOffset uint16

	// rightPage is the right sibling page, internal nodes only.
	rightPage uint16

	// cellOffsetArray is the start of the cell offset array within the node.
	cellOffsetArray uint16
}

// CreateNode writes the header of an empty node of type typ on page. The page
// is expected to be freshly allocated.
func CreateNode(page *pager.MemPage, typ NodeType) (*Node, error) {
	if !typ.Valid() {
		return nil, errors.Wrapf(customerrors.ErrUnrecognizedNodeType, "create %v on page %d", typ, page.Number())
	}
	if page.Len() < NodeHeaderSize {
		return nil, errors.Wrapf(
			customerrors.ErrOutOfMemory,
			"page %d has %d usable bytes, node header needs %d",
			page.Number(), page.Len(), NodeHeaderSize,
		)
	}

	n := &Node{
		page:            page,
		typ:             typ,
		freeOffset:      0,
		nCells:          0,
		cellsOffset:     uint16(len(page.Raw())),
		rightPage:       0,
		cellOffsetArray: NodeHeaderSize,
	}
	n.sync()

	return n, nil
}

// LoadNode decodes the node stored on page.
func LoadNode(page *pager.MemPage) (*Node, error) {
	d := page.Data()
	if len(d) < NodeHeaderSize {
		return nil, errors.Wrapf(customerrors.ErrCorruptNode, "page %d too small for a node", page.Number())
	}

	typ, err := NodeTypeFromByte(d[nodeType])
	if err != nil {
		return nil, errors.Wrapf(err, "load node from page %d", page.Number())
	}

	n := &Node{
		page:            page,
		typ:             typ,
		freeOffset:      bin.Uint16(d[nodeFreeOffset:nodeNCells]),
		nCells:          bin.Uint16(d[nodeNCells:nodeCellsOffset]),
		cellsOffset:     bin.Uint16(d[nodeCellsOffset:nodeRightPage]),
		rightPage:       bin.Uint16(d[nodeRightPage:NodeHeaderSize]),
		cellOffsetArray: NodeHeaderSize,
	}

	if err := n.check(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) Page() *pager.MemPage {
	return n.page
}

func (n *Node) PageNumber() uint32 {
	return n.page.Number()
}

func (n *Node) Type() NodeType {
	return n.typ
}

func (n *Node) FreeOffset() uint16 {
	return n.freeOffset
}

func (n *Node) SetFreeOffset(v uint16) {
	n.freeOffset = v
}

func (n *Node) NCells() uint16 {
	return n.nCells
}

func (n *Node) SetNCells(v uint16) {
	n.nCells = v
}

func (n *Node) CellsOffset() uint16 {
	return n.cellsOffset
}

func (n *Node) SetCellsOffset(v uint16) {
	n.cellsOffset = v
}

func (n *Node) RightPage() uint16 {
	return n.rightPage
}

func (n *Node) SetRightPage(v uint16) {
	n.rightPage = v
}

// CellOffsetArray returns where the cell offset array starts, relative to
// the node.
func (n *Node) CellOffsetArray() uint16 {
	return n.cellOffsetArray
}

// FreeSpace returns the bytes left between the end of the cell offset array
// and the start of the cell area.
func (n *Node) FreeSpace() int {
	return int(n.cellsOffset) - n.arrayEnd(n.nCells)
}

// CellOffset returns entry i of the cell offset array.
func (n *Node) CellOffset(i uint16) (uint16, error) {
	if i >= n.nCells {
		return 0, errors.Wrapf(customerrors.ErrInvalidCellNumber, "cell %d of %d", i, n.nCells)
	}

	pos := n.arrayPos(i)
	return bin.Uint16(n.page.Data()[pos : pos+CellOffsetSize]), nil
}

// SetCellOffset writes entry i of the cell offset array on the page. i may be
// equal to NCells to fill the slot a new cell will take, the caller then
// updates NCells and FreeOffset itself.
func (n *Node) SetCellOffset(i uint16, offset uint16) error {
	if i > n.nCells {
		return errors.Wrapf(customerrors.ErrInvalidCellNumber, "cell %d of %d", i, n.nCells)
	}
	if end := n.arrayEnd(i + 1); end > int(n.cellsOffset) {
		return errors.Wrapf(
			customerrors.ErrOutOfMemory,
			"cell offset array would end at %d, cell area starts at %d",
			end, n.cellsOffset,
		)
	}

	pos := n.arrayPos(i)
	bin.PutUint16(n.page.Data()[pos:pos+CellOffsetSize], offset)
	return nil
}

// sync encodes the scalar header fields into the page buffer. Nothing else
// on the page is touched.
func (n *Node) sync() {
	d := n.page.Data()
	d[nodeType] = byte(n.typ)
	bin.PutUint16(d[nodeFreeOffset:nodeNCells], n.freeOffset)
	bin.PutUint16(d[nodeNCells:nodeCellsOffset], n.nCells)
	bin.PutUint16(d[nodeCellsOffset:nodeRightPage], n.cellsOffset)
	bin.PutUint16(d[nodeRightPage:NodeHeaderSize], n.rightPage)
}

// check verifies the offsets read from disk agree with each other: the cell
// area fits in the page and does not overlap the cell offset array.
func (n *Node) check() error {
	if pageSize := len(n.page.Raw()); int(n.cellsOffset) > pageSize {
		return errors.Wrapf(
			customerrors.ErrCorruptNode,
			"page %d: cells offset %d past page size %d",
			n.page.Number(), n.cellsOffset, pageSize,
		)
	}
	if end := n.arrayEnd(n.nCells); end > int(n.cellsOffset) {
		return errors.Wrapf(
			customerrors.ErrCorruptNode,
			"page %d: %d cell offsets end at %d, cell area starts at %d",
			n.page.Number(), n.nCells, end, n.cellsOffset,
		)
	}
	return nil
}

// arrayPos is the position of entry i within the node region.
func (n *Node) arrayPos(i uint16) int {
	return int(n.cellOffsetArray) + int(i)*CellOffsetSize
}

// arrayEnd is the page offset right after the first count entries.
func (n *Node) arrayEnd(count uint16) int {
	return n.page.Offset() + n.arrayPos(count)
}
