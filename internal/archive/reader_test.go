package archive

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureEntry describes one member of a hand-built test archive.
type fixtureEntry struct {
	name       string
	data       []byte // uncompressed payload
	method     uint16
	stored     []byte // bytes written after the local header; nil means data as-is
	uncompSize int    // declared uncompressed size; -1 means len(data)
}

// buildArchive assembles a minimal ZIP buffer: local file headers with
// payloads, then the central directory, then the EOCD record. CRCs and
// timestamps are left zero, which the reader ignores.
func buildArchive(entries ...fixtureEntry) []byte {
	var buf bytes.Buffer
	le16 := func(v int) {
		binary.Write(&buf, binary.LittleEndian, uint16(v))
	}
	le32 := func(v int) {
		binary.Write(&buf, binary.LittleEndian, uint32(v))
	}

	offsets := make([]int, len(entries))
	for i, e := range entries {
		stored := e.stored
		if stored == nil {
			stored = e.data
		}
		offsets[i] = buf.Len()
		buf.Write([]byte{0x50, 0x4B, 0x03, 0x04})
		le16(20)            // version needed
		le16(0)             // flags
		le16(int(e.method)) // compression method
		le16(0)             // mod time
		le16(0)             // mod date
		le32(0)             // crc32
		le32(len(stored))   // compressed size
		le32(len(e.data))   // uncompressed size
		le16(len(e.name))
		le16(0) // extra length
		buf.WriteString(e.name)
		buf.Write(stored)
	}

	cdStart := buf.Len()
	for i, e := range entries {
		stored := e.stored
		if stored == nil {
			stored = e.data
		}
		uncomp := e.uncompSize
		if uncomp < 0 {
			uncomp = len(e.data)
		}
		buf.Write([]byte{0x50, 0x4B, 0x01, 0x02})
		le16(20) // version made by
		le16(20) // version needed
		le16(0)  // flags
		le16(int(e.method))
		le16(0) // mod time
		le16(0) // mod date
		le32(0) // crc32
		le32(len(stored))
		le32(uncomp)
		le16(len(e.name))
		le16(0) // extra length
		le16(0) // comment length
		le16(0) // disk number start
		le16(0) // internal attributes
		le32(0) // external attributes
		le32(offsets[i])
		buf.WriteString(e.name)
	}
	cdSize := buf.Len() - cdStart

	buf.Write([]byte{0x50, 0x4B, 0x05, 0x06})
	le16(0) // disk number
	le16(0) // central directory disk
	le16(len(entries))
	le16(len(entries))
	le32(cdSize)
	le32(cdStart)
	le16(0) // comment length

	return buf.Bytes()
}

func TestParse_storedEntries(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "data.json", data: []byte(`{"ok":true}`), method: methodStored, uncompSize: -1},
		fixtureEntry{name: "images/port.png", data: []byte{0x89, 'P', 'N', 'G'}, method: methodStored, uncompSize: -1},
	)

	entries, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "data.json", entries[0].Path)
	assert.Equal(t, KindFile, entries[0].Kind)
	assert.Equal(t, []byte(`{"ok":true}`), entries[0].Payload)

	assert.Equal(t, "images/port.png", entries[1].Path)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, entries[1].Payload)
}

func TestParse_storedPayloadDoesNotAliasBuffer(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "a.txt", data: []byte("hello"), method: methodStored, uncompSize: -1},
	)

	entries, err := Parse(buf)
	require.NoError(t, err)

	for i := range buf {
		buf[i] = 0
	}
	assert.Equal(t, []byte("hello"), entries[0].Payload)
}

func TestParse_deflateEntry(t *testing.T) {
	data := bytes.Repeat([]byte("sea day sea day "), 256)
	buf := buildArchive(
		fixtureEntry{name: "data.json", data: data, stored: deflateRaw(t, data), method: methodDeflate, uncompSize: -1},
	)

	entries, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, data, entries[0].Payload)
}

func TestParse_directoryEntry(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "images/", method: methodStored, uncompSize: -1},
		fixtureEntry{name: "images/a.png", data: []byte("png"), method: methodStored, uncompSize: -1},
	)

	entries, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, KindDirectory, entries[0].Kind)
	assert.Nil(t, entries[0].Payload)
	assert.Equal(t, KindFile, entries[1].Kind)
}

func TestParse_unsupportedMethodListedWithoutPayload(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "weird.bin", data: []byte("x"), method: 99, uncompSize: -1},
		fixtureEntry{name: "ok.txt", data: []byte("fine"), method: methodStored, uncompSize: -1},
	)

	entries, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "weird.bin", entries[0].Path)
	assert.Nil(t, entries[0].Payload)
	assert.Equal(t, []byte("fine"), entries[1].Payload)
}

func TestParse_sizeMismatchYieldsNilPayload(t *testing.T) {
	data := bytes.Repeat([]byte("abc"), 100)
	buf := buildArchive(
		fixtureEntry{name: "short.bin", data: data, stored: deflateRaw(t, data), method: methodDeflate, uncompSize: len(data) + 1},
	)

	entries, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Payload)
}

func TestParse_noEOCD(t *testing.T) {
	_, err := Parse([]byte("this is not a zip archive at all"))
	assert.ErrorIs(t, err, ErrNoEOCD)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrNoEOCD)
}

func TestParse_flippedEOCDSignature(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "a.txt", data: []byte("a"), method: methodStored, uncompSize: -1},
	)
	buf[len(buf)-eocdRecordLen] ^= 0xFF

	_, err := Parse(buf)
	assert.ErrorIs(t, err, ErrFormat)
}

// corruptCentralRecord flips a byte in the n-th central directory file
// header signature.
func corruptCentralRecord(t *testing.T, buf []byte, n int) {
	t.Helper()
	off := 0
	for i := 0; i <= n; i++ {
		idx := bytes.Index(buf[off:], centralDirectorySignature)
		require.GreaterOrEqual(t, idx, 0)
		off += idx
		if i < n {
			off += 4
		}
	}
	buf[off] ^= 0xFF
}

func TestParse_corruptCentralDirectoryFailsWholeParse(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "a.txt", data: []byte("a"), method: methodStored, uncompSize: -1},
		fixtureEntry{name: "b.txt", data: []byte("b"), method: methodStored, uncompSize: -1},
	)
	corruptCentralRecord(t, buf, 1)

	entries, err := Parse(buf)
	assert.ErrorIs(t, err, ErrCorruptCentralDirectory)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Nil(t, entries)
}

func TestParser_allowPartialStopsAtBadRecord(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "a.txt", data: []byte("a"), method: methodStored, uncompSize: -1},
		fixtureEntry{name: "b.txt", data: []byte("b"), method: methodStored, uncompSize: -1},
	)
	corruptCentralRecord(t, buf, 1)

	entries, err := Parser{AllowPartial: true}.Parse(buf)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Path)
	assert.Equal(t, []byte("a"), entries[0].Payload)
}

func TestParse_nameLengthBeyondBuffer(t *testing.T) {
	buf := buildArchive(
		fixtureEntry{name: "a.txt", data: []byte("a"), method: methodStored, uncompSize: -1},
	)
	// Inflate the declared name length of the only central record.
	idx := bytes.Index(buf, centralDirectorySignature)
	require.GreaterOrEqual(t, idx, 0)
	buf[idx+28] = 0xFF
	buf[idx+29] = 0xFF

	_, err := Parse(buf)
	assert.ErrorIs(t, err, ErrCorruptCentralDirectory)
}
