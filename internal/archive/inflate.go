package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// ErrDecompression is returned when a raw-deflate stream cannot be
// decoded, or when the decoded length does not match the size declared
// in the central directory. A short result is never silently accepted.
var ErrDecompression = errors.New("archive: decompression error")

// inflateRaw decompresses a headerless (raw) DEFLATE stream, as used by
// ZIP method 8. The decoded length must equal expectedSize exactly.
func inflateRaw(compressed []byte, expectedSize int) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	// Read into expectedSize+1 bytes so an over-long stream shows up as
	// n > expectedSize without decoding it in full.
	out := make([]byte, expectedSize+1)
	n, err := io.ReadFull(fr, out)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: inflate: %v", ErrDecompression, err)
	}
	if n != expectedSize {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrDecompression, n, expectedSize)
	}
	return out[:n], nil
}
