// Package compress wraps klauspost/compress as the byte-in/byte-out
// Compressor collaborator: given a coding name and raw bytes, produce
// compressed bytes, or report the coding as unsupported.
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compress encodes raw using the named coding (gzip, deflate, zlib).
// An unrecognized coding returns raw unchanged with ok=false.
func Compress(coding string, raw []byte) (out []byte, ok bool) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch coding {
	case "gzip":
		w = gzip.NewWriter(&buf)
	case "deflate":
		w, _ = flate.NewWriter(&buf, flate.DefaultCompression)
	case "zlib":
		w = zlib.NewWriter(&buf)
	default:
		return raw, false
	}
	if _, err := w.Write(raw); err != nil {
		return raw, false
	}
	if err := w.Close(); err != nil {
		return raw, false
	}
	return buf.Bytes(), true
}

// EncodeBody applies coding to raw, but only when the result is
// strictly smaller; otherwise it returns the raw bytes and reports
// that compression was not applied, so the caller can omit the
// response's Accept-Encoding-mirroring header.
func EncodeBody(coding string, raw []byte) (out []byte, applied bool) {
	compressed, ok := Compress(coding, raw)
	if !ok || len(compressed) >= len(raw) {
		return raw, false
	}
	return compressed, true
}
