package btree

import (
	"bytes"

	"go-chidb/pkg/customerrors"
	"go-chidb/pkg/pager"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the encoded size of Header, always the same regardless
	// of which fields are set.
	HeaderSize = pager.HeaderSize

	MagicSize            = 15
	DefaultPageCacheSize = 20000
)

// header layout, little endian
const (
	hdrMagic             = 0
	hdrPageSize          = hdrMagic + MagicSize
	hdrFileChangeCounter = hdrPageSize + 2
	hdrSchemaVersion     = hdrFileChangeCounter + 4
	hdrPageCacheSize     = hdrSchemaVersion + 4
	hdrUserCookie        = hdrPageCacheSize + 4
	hdrReserved          = hdrUserCookie + 4
)

var magic = [MagicSize]byte{
	'S', 'Q', 'L', 'i', 't', 'e', ' ', 'f', 'o', 'r', 'm', 'a', 't', ' ', '3',
}

// Magic returns the bytes every valid file starts with.
func Magic() []byte {
	return append([]byte(nil), magic[:]...)
}

func DefaultHeader(pageSize uint16) Header {
	return Header{
		Magic:         magic,
		PageSize:      pageSize,
		PageCacheSize: DefaultPageCacheSize,
	}
}

// Header is the file level metadata stored in the first HeaderSize bytes of
// page 1.
type Header struct {
	Magic    [MagicSize]byte
	PageSize uint16

	// FileChangeCounter is increased every time the file is modified.
	FileChangeCounter uint32

	// SchemaVersion is increased every time the schema is modified.
	SchemaVersion uint32

	// PageCacheSize is an advisory cache size, it is not enforced.
	PageCacheSize uint32

	// UserCookie is available to the user for read-write access.
	UserCookie uint32
}

// ValidMagic reports whether the header carries the expected magic bytes.
// Decoding never checks it, so garbage can be probed safely.
func (h Header) ValidMagic() bool {
	return bytes.Equal(h.Magic[:], magic[:])
}

func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)

	copy(buf[hdrMagic:hdrPageSize], h.Magic[:])
	bin.PutUint16(buf[hdrPageSize:hdrFileChangeCounter], h.PageSize)
	bin.PutUint32(buf[hdrFileChangeCounter:hdrSchemaVersion], h.FileChangeCounter)
	bin.PutUint32(buf[hdrSchemaVersion:hdrPageCacheSize], h.SchemaVersion)
	bin.PutUint32(buf[hdrPageCacheSize:hdrUserCookie], h.PageCacheSize)
	bin.PutUint32(buf[hdrUserCookie:hdrReserved], h.UserCookie)

	return buf, nil
}

func (h *Header) UnmarshalBinary(d []byte) error {
	if h == nil {
		return errors.New("cannot unmarshal into nil header")
	}
	if len(d) < HeaderSize {
		return errors.Wrapf(customerrors.ErrMissingHeader, "got %d of %d header bytes", len(d), HeaderSize)
	}

	copy(h.Magic[:], d[hdrMagic:hdrPageSize])
	h.PageSize = bin.Uint16(d[hdrPageSize:hdrFileChangeCounter])
	h.FileChangeCounter = bin.Uint32(d[hdrFileChangeCounter:hdrSchemaVersion])
	h.SchemaVersion = bin.Uint32(d[hdrSchemaVersion:hdrPageCacheSize])
	h.PageCacheSize = bin.Uint32(d[hdrPageCacheSize:hdrUserCookie])
	h.UserCookie = bin.Uint32(d[hdrUserCookie:hdrReserved])

	return nil
}
