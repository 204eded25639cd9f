// Package pager provides paged access to a single database file. It is the
// only place where the file is read or written: pages are addressed by a
// 1-based number and always transferred whole.
package pager

import (
	"io"
	"os"

	"go-chidb/pkg/customerrors"
	"go-chidb/util/helpers"
	"go-chidb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Open opens the named file for paged access, creating it if it does not
// exist. The file header is neither read nor written here. If nil options
// are provided, defaultOptions will be used.
func Open(fileName string, opts *Options) (*Pager, error) {
	if opts == nil {
		opts = &defaultOptions
	}

	if err := ValidatePageSize(opts.PageSize); err != nil {
		return nil, err
	}

	mode := opts.FileMode
	if mode == 0 {
		mode = defaultOptions.FileMode
	}

	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_RDWR, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}

	p := &Pager{
		file:     f,
		pageSize: opts.PageSize,
		log:      logger.For("pager").WithField("file", fileName),
	}

	if err := p.countPages(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return p, nil
}

// Pager owns the file handle. It is not safe for concurrent use.
type Pager struct {
	file       *os.File
	pageSize   int
	totalPages uint32
	log        *logrus.Entry
}

func (p *Pager) PageSize() int {
	return p.pageSize
}

// PageCount returns the number of pages allocated so far, including the
// pages found in the file when it was opened.
func (p *Pager) PageCount() uint32 {
	return p.totalPages
}

// SetPageSize switches the pager to the page size recorded in an existing
// file and recomputes the number of addressable pages.
func (p *Pager) SetPageSize(size int) error {
	if err := ValidatePageSize(size); err != nil {
		return err
	}

	p.pageSize = size
	return p.countPages()
}

func (p *Pager) IsEmpty() (bool, error) {
	size, err := p.size()
	if err != nil {
		return false, err
	}
	return size == 0, nil
}

// AllocatePage reserves the next page number. Nothing is written, the page
// reads back as zeros until it is written. Page numbers are never reused.
func (p *Pager) AllocatePage() uint32 {
	p.totalPages++
	return p.totalPages
}

// ReadPage reads page n into a new MemPage. Bytes of an allocated page that
// do not exist on disk yet read as zeros.
func (p *Pager) ReadPage(n uint32) (*MemPage, error) {
	if err := p.checkPageNumber(n); err != nil {
		return nil, err
	}

	data := make([]byte, p.pageSize)
	count, err := p.file.ReadAt(data, p.offset(n))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "read page %d", n)
	}
	p.log.Debugf("read %d bytes from page %d", count, n)

	return NewMemPage(n, data), nil
}

// WritePage writes the whole page buffer back to its place in the file.
func (p *Pager) WritePage(page *MemPage) error {
	if err := p.checkPageNumber(page.number); err != nil {
		return err
	}

	if l := len(page.data); l != p.pageSize {
		return errors.Wrapf(
			customerrors.ErrInvalidPageSize,
			"page %d holds %d bytes, want %d", page.number, l, p.pageSize,
		)
	}

	if err := p.writeAt(page.data, p.offset(page.number)); err != nil {
		return errors.Wrapf(err, "write page %d", page.number)
	}
	p.log.Debugf("wrote %d bytes to page %d", len(page.data), page.number)

	return nil
}

// ReadHeader returns the first HeaderSize bytes of the file. It works before
// the page size is known. When the file is shorter than the header the bytes
// that do exist are returned, zero padded, together with ErrMissingHeader.
func (p *Pager) ReadHeader() ([]byte, error) {
	header := make([]byte, HeaderSize)
	n, err := p.file.ReadAt(header, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return header, errors.Wrapf(
				customerrors.ErrMissingHeader,
				"file holds %d of %d header bytes", n, HeaderSize,
			)
		}
		return nil, errors.Wrap(err, "read header")
	}

	return header, nil
}

func (p *Pager) WriteHeader(header []byte) error {
	if l := len(header); l != HeaderSize {
		return errors.Errorf("invalid header size %d, want %d", l, HeaderSize)
	}

	if err := p.writeAt(header, 0); err != nil {
		return errors.Wrap(err, "write header")
	}
	return nil
}

func (p *Pager) Close() error {
	if p.file == nil {
		return nil
	}

	err := p.file.Close()
	p.file = nil
	return errors.Wrap(err, "close")
}

// writeAt keeps writing until buf is fully on disk or an error occurs.
func (p *Pager) writeAt(buf []byte, off int64) error {
	written := 0
	for written < len(buf) {
		n, err := p.file.WriteAt(buf[written:], off+int64(written))
		written += n
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Pager) size() (int64, error) {
	info, err := p.file.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "stat")
	}
	return info.Size(), nil
}

func (p *Pager) countPages() error {
	size, err := p.size()
	if err != nil {
		return err
	}

	p.totalPages = uint32(helpers.CeilDiv(size, int64(p.pageSize)))
	return nil
}

func (p *Pager) checkPageNumber(n uint32) error {
	if n == 0 || n > p.totalPages {
		return errors.Wrapf(
			customerrors.ErrInvalidPageNumber,
			"page %d of %d", n, p.totalPages,
		)
	}
	return nil
}

func (p *Pager) offset(n uint32) int64 {
	return int64(n-1) * int64(p.pageSize)
}
