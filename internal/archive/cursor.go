// Package archive implements a reader for the subset of the ZIP format
// produced by the companion web application: stored and raw-deflate
// entries, indexed by the central directory. The whole archive is held
// in memory; streaming of oversized archives is out of scope.
package archive

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned by any read that would run past the end of
// the buffer. Multi-byte reads are total functions: malformed input
// produces this error, never an out-of-range access.
var ErrTruncated = errors.New("archive: truncated data")

// readU16LE reads a little-endian uint16 at off.
func readU16LE(buf []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, fmt.Errorf("%w: u16 at offset %d, length %d", ErrTruncated, off, len(buf))
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8, nil
}

// readU32LE reads a little-endian uint32 at off.
func readU32LE(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, fmt.Errorf("%w: u32 at offset %d, length %d", ErrTruncated, off, len(buf))
	}
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24, nil
}

// readSlice returns the n bytes starting at off. The returned slice
// aliases buf; callers that retain it must copy.
func readSlice(buf []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(buf) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, length %d", ErrTruncated, n, off, len(buf))
	}
	return buf[off : off+n], nil
}
