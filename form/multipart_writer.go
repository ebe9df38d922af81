package form

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// MultipartWriter assembles a multipart/form-data body for outgoing
// client requests, adapted from the reader side above: it writes the
// same "--boundary\r\n" / "--boundary--\r\n" delimiters the reader
// expects, so a request built here round-trips through ParseMultipart.
type MultipartWriter struct {
	boundary string
	body     strings.Builder
	started  bool
}

// NewMultipartWriter returns a Writer with a fresh random boundary.
func NewMultipartWriter() *MultipartWriter {
	return &MultipartWriter{boundary: randomBoundary()}
}

// Boundary returns the boundary string, without the leading "--".
func (w *MultipartWriter) Boundary() string {
	return w.boundary
}

// ContentType returns the multipart/form-data Content-Type header
// value carrying this Writer's boundary.
func (w *MultipartWriter) ContentType() string {
	return "multipart/form-data; boundary=" + w.boundary
}

// WriteField adds a plain form value part.
func (w *MultipartWriter) WriteField(name, value string) {
	w.writeDelimiter()
	fmt.Fprintf(&w.body, "Content-Disposition: form-data; name=\"%s\"\r\n\r\n%s", name, value)
}

// WriteFile adds a file part with the given field name, filename, and
// content type.
func (w *MultipartWriter) WriteFile(name, filename, contentType string, content []byte) {
	w.writeDelimiter()
	fmt.Fprintf(&w.body, "Content-Disposition: form-data; name=\"%s\"; filename=\"%s\"\r\nContent-Type: %s\r\n\r\n%s",
		name, filename, contentType, content)
}

func (w *MultipartWriter) writeDelimiter() {
	if w.started {
		w.body.WriteString("\r\n")
	}
	w.started = true
	w.body.WriteString("--" + w.boundary + "\r\n")
}

// Close finalizes the body with the closing boundary and returns the
// complete payload.
func (w *MultipartWriter) Close() string {
	w.body.WriteString("\r\n--" + w.boundary + "--\r\n")
	return w.body.String()
}

func randomBoundary() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return fmt.Sprintf("%x", buf[:])
}
