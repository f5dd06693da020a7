package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadU16LE(t *testing.T) {
	buf := []byte{0x34, 0x12, 0xFF}

	v, err := readU16LE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	_, err = readU16LE(buf, 2)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = readU16LE(buf, -1)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = readU16LE(nil, 0)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadU32LE(t *testing.T) {
	buf := []byte{0x78, 0x56, 0x34, 0x12, 0x00}

	v, err := readU32LE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	v, err = readU32LE(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00123456), v)

	_, err = readU32LE(buf, 2)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadSlice(t *testing.T) {
	buf := []byte("abcdef")

	s, err := readSlice(buf, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("cde"), s)

	s, err = readSlice(buf, 6, 0)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = readSlice(buf, 4, 3)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = readSlice(buf, -1, 2)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = readSlice(buf, 0, -1)
	assert.ErrorIs(t, err, ErrTruncated)
}
