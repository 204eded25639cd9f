package pager

import (
	"fmt"
)

// NewMemPage wraps data as the in-memory copy of page number. Page 1 skips
// the file header, every other page is usable from byte 0.
func NewMemPage(number uint32, data []byte) *MemPage {
	offset := 0
	if number == 1 {
		offset = HeaderSize
	}

	return &MemPage{
		number: number,
		offset: offset,
		data:   data,
	}
}

// MemPage is a detached, mutable copy of one page of the file. Changes are
// not visible on disk until the page is handed back to Pager.WritePage.
type MemPage struct {
	number uint32

	// offset where node content starts, HeaderSize on page 1
	offset int

	data []byte
}

func (m *MemPage) Number() uint32 {
	return m.number
}

func (m *MemPage) Offset() int {
	return m.offset
}

// Data returns the usable part of the page, starting at Offset. The slice
// aliases the page buffer, so writes through it modify the page.
func (m *MemPage) Data() []byte {
	return m.data[m.offset:]
}

// Raw returns the whole page buffer including the file header on page 1.
func (m *MemPage) Raw() []byte {
	return m.data
}

// Len is the number of usable bytes, len(Data()).
func (m *MemPage) Len() int {
	return len(m.data) - m.offset
}

// SetData replaces everything from Offset onward with d. Bytes before Offset
// are left untouched. d must be exactly Len() bytes long.
func (m *MemPage) SetData(d []byte) {
	if len(d) != m.Len() {
		panic(fmt.Errorf(
			"set data on page %d: got %d bytes, want %d",
			m.number, len(d), m.Len(),
		))
	}

	copy(m.data[m.offset:], d)
}
