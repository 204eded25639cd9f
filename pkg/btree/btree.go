// Package btree implements the B-Tree file layer of a chidb database: a
// SQLite-compatible file made of fixed-size pages, the first one starting
// with the file header, each page holding one B-Tree node.
package btree

import (
	"encoding/binary"

	"go-chidb/pkg/customerrors"
	"go-chidb/pkg/pager"
	"go-chidb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// bin is the byte order used for all marshals/unmarshals.
var bin = binary.LittleEndian

// Open opens the named file as a B-Tree file. An empty or missing file is
// initialized with a default header and an empty leaf table node on page 1.
// An existing file must start with a valid header, its page size overrides
// the one in opts. If nil options are provided, defaultOptions will be used.
func Open(fileName string, opts *Options) (*BTree, error) {
	if opts == nil {
		opts = &defaultOptions
	}
	o := opts.withDefaults()

	p, err := pager.Open(fileName, &pager.Options{
		PageSize: o.PageSize,
		FileMode: o.FileMode,
	})
	if err != nil {
		return nil, err
	}

	tree := &BTree{
		file:  fileName,
		pager: p,
		log:   logger.For("btree").WithField("file", fileName),
	}

	if err := tree.open(o); err != nil {
		_ = tree.Close()
		return nil, err
	}

	return tree, nil
}

// BTree is a B-Tree file. It owns the pager for its whole lifetime and keeps
// the decoded file header in memory. Nodes handed out are detached copies.
type BTree struct {
	file   string
	pager  *pager.Pager
	header *Header
	log    *logrus.Entry
}

// GetNodeByPage loads the node stored on page n. Changes made to the
// returned node are not written until WriteNode is called with it.
func (tree *BTree) GetNodeByPage(n uint32) (*Node, error) {
	page, err := tree.pager.ReadPage(n)
	if err != nil {
		return nil, err
	}
	return LoadNode(page)
}

// NewNode allocates a new page and initializes it as an empty node of type
// typ. Page numbers are never reused.
func (tree *BTree) NewNode(typ NodeType) (*Node, error) {
	if !typ.Valid() {
		return nil, errors.Wrapf(customerrors.ErrUnrecognizedNodeType, "new node of type 0x%02X", byte(typ))
	}

	n := tree.pager.AllocatePage()
	page, err := tree.pager.ReadPage(n)
	if err != nil {
		return nil, err
	}

	node, err := CreateNode(page, typ)
	if err != nil {
		return nil, err
	}

	if err := tree.writePage(page); err != nil {
		return nil, err
	}
	tree.log.Debugf("created %v node on page %d", typ, n)

	return node, nil
}

// InitEmptyNode turns the already allocated page n into an empty node of
// type typ. Whatever the page held before, cells included, is discarded.
func (tree *BTree) InitEmptyNode(n uint32, typ NodeType) (*Node, error) {
	page, err := tree.pager.ReadPage(n)
	if err != nil {
		return nil, err
	}

	page.SetData(make([]byte, page.Len()))

	node, err := CreateNode(page, typ)
	if err != nil {
		return nil, err
	}

	return node, tree.writePage(page)
}

// WriteNode stores the scalar fields of node in its page and writes the page
// to disk. The cell offset array and cells are already on the page.
func (tree *BTree) WriteNode(node *Node) error {
	node.sync()
	return tree.writePage(node.page)
}

// Header returns a copy of the current file header.
func (tree *BTree) Header() Header {
	return *tree.header
}

func (tree *BTree) IncrementChangeCounter() error {
	tree.header.FileChangeCounter++
	return tree.writeHeader()
}

func (tree *BTree) IncrementSchemaVersion() error {
	tree.header.SchemaVersion++
	return tree.writeHeader()
}

func (tree *BTree) SetUserCookie(v uint32) error {
	tree.header.UserCookie = v
	return tree.writeHeader()
}

func (tree *BTree) SetPageCacheSize(v uint32) error {
	tree.header.PageCacheSize = v
	return tree.writeHeader()
}

func (tree *BTree) PageSize() int {
	return tree.pager.PageSize()
}

func (tree *BTree) PageCount() uint32 {
	return tree.pager.PageCount()
}

// ReadPage returns a raw copy of page n, for tools that look at pages
// without decoding them as nodes.
func (tree *BTree) ReadPage(n uint32) (*pager.MemPage, error) {
	return tree.pager.ReadPage(n)
}

func (tree *BTree) Close() error {
	if tree.pager == nil {
		return nil
	}

	err := tree.pager.Close()
	tree.pager = nil
	return err
}

func (tree *BTree) open(opts Options) error {
	empty, err := tree.pager.IsEmpty()
	if err != nil {
		return err
	}

	if empty {
		return tree.init(opts)
	}
	return tree.load()
}

// init writes the header of a new file and an empty leaf table node on
// page 1.
func (tree *BTree) init(opts Options) error {
	h := DefaultHeader(uint16(opts.PageSize))
	h.PageCacheSize = opts.PageCacheSize
	tree.header = &h

	if err := tree.writeHeader(); err != nil {
		return err
	}

	if _, err := tree.NewNode(LeafTable); err != nil {
		return errors.Wrap(err, "create root node")
	}

	tree.log.Infof("initialized new file with page size %d", opts.PageSize)
	return nil
}

// load reads and validates the header of an existing file and switches the
// pager to the page size it records.
func (tree *BTree) load() error {
	raw, err := tree.pager.ReadHeader()
	if err != nil && !errors.Is(err, customerrors.ErrMissingHeader) {
		return err
	}

	// a truncated file is only reported as such when what is left of it
	// still starts like a header
	var h Header
	copy(h.Magic[:], raw[hdrMagic:hdrPageSize])
	if !h.ValidMagic() {
		return errors.Wrapf(customerrors.ErrCorruptHeader, "bad magic %q", raw[hdrMagic:hdrPageSize])
	}
	if err != nil {
		return err
	}

	if err := h.UnmarshalBinary(raw); err != nil {
		return err
	}

	if err := tree.pager.SetPageSize(int(h.PageSize)); err != nil {
		return errors.Wrapf(customerrors.ErrCorruptHeader, "page size %d: %v", h.PageSize, err)
	}

	tree.header = &h
	tree.log.Debugf("loaded file with page size %d and %d pages", h.PageSize, tree.pager.PageCount())
	return nil
}

func (tree *BTree) writeHeader() error {
	b, err := tree.header.MarshalBinary()
	if err != nil {
		return err
	}
	return tree.pager.WriteHeader(b)
}

// writePage writes page through the pager. On page 1 the header bytes are
// taken from the in-memory header first, so a stale page copy can never
// overwrite a header updated since it was read.
func (tree *BTree) writePage(page *pager.MemPage) error {
	if page.Number() == 1 {
		b, err := tree.header.MarshalBinary()
		if err != nil {
			return err
		}
		copy(page.Raw()[:HeaderSize], b)
	}
	return tree.pager.WritePage(page)
}
