package archive

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Format errors abort the whole parse before any entry is returned.
var (
	// ErrFormat is the root of all archive structure errors.
	ErrFormat = errors.New("archive: format error")

	// ErrNoEOCD means no end-of-central-directory record was found in
	// the trailing 65557 bytes; the buffer is not a ZIP archive.
	ErrNoEOCD = fmt.Errorf("%w: end of central directory not found", ErrFormat)

	// ErrCorruptCentralDirectory means a central directory record had a
	// bad signature or declared lengths running past the buffer end.
	ErrCorruptCentralDirectory = fmt.Errorf("%w: corrupt central directory", ErrFormat)
)

var (
	eocdSignature            = []byte{0x50, 0x4B, 0x05, 0x06}
	centralDirectorySignature = []byte{0x50, 0x4B, 0x01, 0x02}
)

const (
	// stored (method 0) and deflate (method 8) are the only methods the
	// companion web application produces. Anything else is listed with a
	// nil payload.
	methodStored  = 0
	methodDeflate = 8

	eocdRecordLen = 22

	// An EOCD record may be followed by a comment of at most 65535
	// bytes, so the backward scan never needs to cover more than
	// 22 + 65535 bytes from the end.
	maxEOCDScan = eocdRecordLen + 65535

	centralHeaderLen = 46
	localHeaderLen   = 30
)

// EntryKind distinguishes file entries from directory entries.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Entry is one archive member in central directory order. Payload is nil
// for directories, for entries with an unsupported compression method,
// and for entries whose data could not be located or decompressed.
type Entry struct {
	Path    string
	Kind    EntryKind
	Payload []byte
}

// centralDirectoryRecord carries the fields of one central directory
// file header that the reader actually uses.
type centralDirectoryRecord struct {
	path              string
	method            uint16
	compressedSize    uint32
	uncompressedSize  uint32
	localHeaderOffset uint32
}

// Parser parses in-memory ZIP buffers.
//
// The zero value is the strict parser: any structural inconsistency in
// the central directory fails the whole parse. AllowPartial restores the
// legacy behavior of stopping at the first bad record and returning the
// entries parsed so far.
type Parser struct {
	AllowPartial bool
}

// Parse is shorthand for the strict Parser{}.Parse.
func Parse(buf []byte) ([]Entry, error) {
	return Parser{}.Parse(buf)
}

// Parse walks the archive's central directory and returns all entries in
// directory order, with payloads extracted and decompressed.
func (p Parser) Parse(buf []byte) ([]Entry, error) {
	eocd := findEOCD(buf)
	if eocd < 0 {
		return nil, ErrNoEOCD
	}

	entryCount, err := readU16LE(buf, eocd+10)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCentralDirectory, err)
	}
	cdOffset, err := readU32LE(buf, eocd+16)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCentralDirectory, err)
	}

	entries := make([]Entry, 0, entryCount)
	off := int(cdOffset)
	for i := 0; i < int(entryCount); i++ {
		rec, next, err := parseCentralRecord(buf, off)
		if err != nil {
			if p.AllowPartial {
				break
			}
			return nil, err
		}

		if strings.HasSuffix(rec.path, "/") {
			entries = append(entries, Entry{Path: rec.path, Kind: KindDirectory})
		} else {
			entries = append(entries, Entry{
				Path:    rec.path,
				Kind:    KindFile,
				Payload: extractPayload(buf, rec),
			})
		}
		off = next
	}

	return entries, nil
}

// findEOCD scans backward from len-22 for the EOCD signature, covering
// at most the trailing 65557 bytes. Returns -1 when not found.
func findEOCD(buf []byte) int {
	lo := len(buf) - maxEOCDScan
	if lo < 0 {
		lo = 0
	}
	for i := len(buf) - eocdRecordLen; i >= lo; i-- {
		if bytes.Equal(buf[i:i+4], eocdSignature) {
			return i
		}
	}
	return -1
}

// parseCentralRecord reads one central directory file header at off and
// returns the record plus the offset of the next header. Any signature
// mismatch or declared length running past the buffer end is a
// ErrCorruptCentralDirectory.
func parseCentralRecord(buf []byte, off int) (centralDirectoryRecord, int, error) {
	sig, err := readSlice(buf, off, 4)
	if err != nil || !bytes.Equal(sig, centralDirectorySignature) {
		return centralDirectoryRecord{}, 0, fmt.Errorf("%w: bad signature at offset %d", ErrCorruptCentralDirectory, off)
	}

	var rec centralDirectoryRecord
	fields := []struct {
		dst *uint32
		off int
	}{
		{&rec.compressedSize, off + 20},
		{&rec.uncompressedSize, off + 24},
		{&rec.localHeaderOffset, off + 42},
	}
	for _, f := range fields {
		v, err := readU32LE(buf, f.off)
		if err != nil {
			return centralDirectoryRecord{}, 0, fmt.Errorf("%w: %v", ErrCorruptCentralDirectory, err)
		}
		*f.dst = v
	}
	rec.method, err = readU16LE(buf, off+10)
	if err != nil {
		return centralDirectoryRecord{}, 0, fmt.Errorf("%w: %v", ErrCorruptCentralDirectory, err)
	}

	nameLen, err1 := readU16LE(buf, off+28)
	extraLen, err2 := readU16LE(buf, off+30)
	commentLen, err3 := readU16LE(buf, off+32)
	if err1 != nil || err2 != nil || err3 != nil {
		return centralDirectoryRecord{}, 0, fmt.Errorf("%w: header truncated at offset %d", ErrCorruptCentralDirectory, off)
	}

	next := off + centralHeaderLen + int(nameLen) + int(extraLen) + int(commentLen)
	if next > len(buf) {
		return centralDirectoryRecord{}, 0, fmt.Errorf("%w: declared lengths run past buffer end at offset %d", ErrCorruptCentralDirectory, off)
	}

	name, err := readSlice(buf, off+centralHeaderLen, int(nameLen))
	if err != nil {
		return centralDirectoryRecord{}, 0, fmt.Errorf("%w: %v", ErrCorruptCentralDirectory, err)
	}
	rec.path = string(name)

	return rec, next, nil
}

// extractPayload resolves the entry's local file header, slices the
// compressed bytes, and decompresses them per the declared method.
// Payload failures are entry-scoped: a truncated local header, missing
// data, unsupported method, or decompression error yields a nil payload
// and never fails the archive parse.
func extractPayload(buf []byte, rec centralDirectoryRecord) []byte {
	lho := int(rec.localHeaderOffset)
	localNameLen, err1 := readU16LE(buf, lho+26)
	localExtraLen, err2 := readU16LE(buf, lho+28)
	if err1 != nil || err2 != nil {
		return nil
	}

	dataStart := lho + localHeaderLen + int(localNameLen) + int(localExtraLen)
	compressed, err := readSlice(buf, dataStart, int(rec.compressedSize))
	if err != nil {
		return nil
	}

	switch rec.method {
	case methodStored:
		// Byte-identity passthrough, copied so entries do not alias the
		// archive buffer.
		return bytes.Clone(compressed)
	case methodDeflate:
		out, err := inflateRaw(compressed, int(rec.uncompressedSize))
		if err != nil {
			return nil
		}
		return out
	default:
		return nil
	}
}
