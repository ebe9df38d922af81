package starry

import (
	"strconv"
	"strings"

	"github.com/aberic/starry/header"
	"github.com/aberic/starry/internal/compress"
)

// SerializeResponse renders resp as "version SP code SP phrase CRLF",
// its headers, a blank line, and the body, applying compression when
// resp.Compress is set and acceptEncoding names a supported coding.
// resp.Body() is drained exactly once by this call; the staged
// Content-Type and the final Content-Length are written back before
// the header block goes out.
func SerializeResponse(resp *Response, acceptEncoding string) []byte {
	contentType := resp.Header.GetContentType()
	body := resp.Body()
	if contentType != "" {
		resp.Header.SetContentType(contentType)
	}

	if resp.Compress && acceptEncoding != "" {
		if encoded, applied := compress.EncodeBody(acceptEncoding, body); applied {
			body = encoded
			resp.Header.Set(header.ContentEncoding, acceptEncoding)
		}
	}

	var sb strings.Builder
	sb.WriteString(resp.Version.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(resp.Status.Code)))
	sb.WriteByte(' ')
	sb.WriteString(resp.Status.Phrase)
	sb.WriteString("\r\n")

	resp.Header.SetContentLength(int64(len(body)))
	if resp.Close {
		resp.Header.Set(header.Connection, "close")
	}
	resp.Header.WriteTo(&sb)
	sb.WriteString("\r\n")

	out := make([]byte, 0, sb.Len()+len(body))
	out = append(out, sb.String()...)
	out = append(out, body...)
	return out
}
