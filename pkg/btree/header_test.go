package btree

import (
	"testing"

	"go-chidb/pkg/customerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_Binary(t *testing.T) {
	original := Header{
		Magic:             magic,
		PageSize:          4096,
		FileChangeCounter: 7,
		SchemaVersion:     3,
		PageCacheSize:     DefaultPageCacheSize,
		UserCookie:        0xDEADBEEF,
	}

	d, err := original.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, d, HeaderSize)

	got := Header{}
	require.NoError(t, got.UnmarshalBinary(d))
	assert.Equal(t, original, got)
}

func TestHeader_Layout(t *testing.T) {
	h := DefaultHeader(1024)
	h.FileChangeCounter = 0x01020304
	h.UserCookie = 0x0A0B0C0D

	d, err := h.MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, []byte("SQLite format 3"), d[0:15])
	assert.Equal(t, []byte{0x00, 0x04}, d[15:17])
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, d[17:21])
	assert.Equal(t, []byte{0, 0, 0, 0}, d[21:25])
	assert.Equal(t, []byte{0x20, 0x4E, 0x00, 0x00}, d[25:29])
	assert.Equal(t, []byte{0x0D, 0x0C, 0x0B, 0x0A}, d[29:33])
	assert.Equal(t, make([]byte, HeaderSize-33), d[33:])
}

func TestHeader_EmptyStillFullSize(t *testing.T) {
	d, err := Header{}.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, HeaderSize), d)
}

func TestHeader_UnmarshalDoesNotValidate(t *testing.T) {
	garbage := make([]byte, HeaderSize)
	for i := range garbage {
		garbage[i] = byte(i)
	}

	var h Header
	require.NoError(t, h.UnmarshalBinary(garbage))
	assert.False(t, h.ValidMagic())
	assert.True(t, DefaultHeader(1024).ValidMagic())
}

func TestHeader_UnmarshalShort(t *testing.T) {
	var h Header
	err := h.UnmarshalBinary(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, customerrors.ErrMissingHeader)
}

func TestMagicIsCopy(t *testing.T) {
	m := Magic()
	m[0] = 'X'
	assert.Equal(t, []byte("SQLite format 3"), Magic())
}
