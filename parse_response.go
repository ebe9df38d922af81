package starry

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/aberic/starry/header"
)

// ParseResponse reads one response from br: the status line, the
// header block, and (per Content-Length) the body.
func ParseResponse(br *bufio.Reader) (*Response, *Error) {
	line, err := readLine(br)
	if err != nil {
		return nil, WrapError(Transport, "reading status line", err)
	}

	version, status, perr := parseStatusLine(line)
	if perr != nil {
		return nil, perr
	}

	hdr, herr := parseHeaderBlock(br)
	if herr != nil {
		return nil, herr
	}

	resp := &Response{Version: version, Status: status, Header: hdr}
	resp.Close = hdr.CheckClose(int(version.Major), int(version.Minor), false)

	contentLength := int64(-1)
	if n, ok := hdr.GetContentLength(); ok {
		contentLength = n
	} else if hdr.Has(header.ContentLength) {
		return nil, ErrBadContentLength
	}

	body, berr := readRequestBody(br, contentLength)
	if berr != nil {
		return nil, berr
	}
	resp.SetBody(hdr.GetContentType(), body)

	return resp, nil
}

// parseStatusLine splits "HTTP/x.y SP code SP phrase" into a Version
// and Status, requiring the phrase to match the code's canonical
// phrase exactly.
func parseStatusLine(line string) (Version, Status, *Error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return Version{}, Status{}, WrapError(MalformedRequest, "malformed status line", parseLineError(line))
	}

	version, err := ParseVersion([]byte(parts[0]))
	if err != nil {
		return Version{}, Status{}, WrapError(Unsupported, "unsupported protocol version", err)
	}

	code, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return Version{}, Status{}, WrapError(MalformedRequest, "malformed status code", err)
	}

	status, err := StatusFromCode(uint16(code))
	if err != nil {
		return Version{}, Status{}, WrapError(Unsupported, "unrecognized status code", err)
	}

	if status.Phrase != parts[2] {
		return Version{}, Status{}, WrapError(MalformedRequest, "status phrase does not match its code", parseLineError(line))
	}

	return version, status, nil
}
