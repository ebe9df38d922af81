package starry

import (
	"bufio"
	"encoding/base64"
	"io"
	"strings"

	"github.com/aberic/starry/header"
	starryurl "github.com/aberic/starry/url"
)

// ParseRequest reads one request from br: the request line, the
// header block, and (per Content-Length) the body. clientAddr is
// recorded on the Request for handlers that need it; it is not read
// from the wire.
//
// The request line and header block are read a line at a time so a
// malformed line is reported before any body bytes are consumed from
// the connection.
func ParseRequest(br *bufio.Reader, clientAddr string) (*Request, *Error) {
	line, err := readLine(br)
	if err != nil {
		return nil, WrapError(Transport, "reading request line", err)
	}

	method, path, version, perr := parseRequestLine(line)
	if perr != nil {
		return nil, perr
	}

	loc, uerr := starryurl.Parse(path)
	if uerr != nil {
		return nil, WrapError(MalformedRequest, "malformed request path", uerr)
	}

	hdr, herr := parseHeaderBlock(br)
	if herr != nil {
		return nil, herr
	}

	req := &Request{
		Method:     method,
		URL:        loc,
		Version:    version,
		Header:     hdr,
		ClientAddr: clientAddr,
	}

	if err := synthesizeRequest(req); err != nil {
		return nil, err
	}

	body, berr := readRequestBody(br, req.ContentLength)
	if berr != nil {
		return nil, berr
	}
	req.Body = body

	return req, nil
}

// parseRequestLine splits "METHOD SP path SP version" into its three
// tokens and classifies the method and version.
func parseRequestLine(line string) (Method, string, Version, *Error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return "", "", Version{}, WrapError(MalformedRequest, "malformed request line", parseLineError(line))
	}

	method, err := ParseMethod([]byte(parts[0]))
	if err != nil {
		return "", "", Version{}, ErrMethodNotAllowed
	}

	version, err := ParseVersion([]byte(parts[2]))
	if err != nil {
		return "", "", Version{}, WrapError(Unsupported, "unsupported protocol version", err)
	}
	if version == HTTP20 {
		return "", "", Version{}, NewError(Unsupported, "HTTP/2.0 requests are not serviced")
	}

	return method, parts[1], version, nil
}

type parseLineError string

func (e parseLineError) Error() string { return "request line: " + string(e) }

// parseHeaderBlock reads header lines until a blank line. Folded
// continuation lines (leading space or tab) are appended to the
// previous header's last value, per RFC 7230's obsolete line folding.
func parseHeaderBlock(br *bufio.Reader) (header.Header, *Error) {
	hdr := header.New()
	var lastKey string

	for {
		line, err := readLine(br)
		if err != nil {
			return nil, WrapError(Transport, "reading header line", err)
		}
		if line == "" {
			return hdr, nil
		}

		if (line[0] == ' ' || line[0] == '\t') && lastKey != "" {
			hdr[lastKey][len(hdr[lastKey])-1] += " " + strings.TrimSpace(line)
			continue
		}

		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return nil, WrapError(MalformedRequest, "malformed header line", parseLineError(line))
		}
		key := strings.TrimSpace(line[:colon])
		value := strings.TrimSpace(line[colon+1:])
		if key == "" {
			return nil, WrapError(MalformedRequest, "empty header name", parseLineError(line))
		}
		hdr.Add(key, value)
		lastKey = key
	}
}

// synthesizeRequest fills in the fields derived from the parsed
// header block: close semantics, mandatory Host, content metadata,
// and cookies.
func synthesizeRequest(req *Request) *Error {
	req.Host = req.Header.GetHost()
	if req.Version == HTTP11 && req.Host == "" {
		return ErrMissingHost
	}

	if user, pass, ok := req.Header.GetUserinfo(decodeBasicAuth); ok {
		req.URL.Authority.Userinfo = &starryurl.Userinfo{Username: user, Password: pass}
	}

	req.Close = req.Header.CheckClose(int(req.Version.Major), int(req.Version.Minor), true)
	req.ContentType = req.Header.GetContentType()
	req.AcceptEncoding = req.Header.GetAcceptEncoding()

	if n, ok := req.Header.GetContentLength(); ok {
		if n < -1 {
			return ErrBadContentLength
		}
		req.ContentLength = n
	} else if req.Header.Has(header.ContentLength) {
		return ErrBadContentLength
	} else {
		req.ContentLength = 0
	}

	cookies, err := req.Header.ReadCookies("")
	if err != nil {
		return WrapError(ParseSemantic, "malformed Cookie header", err)
	}
	req.Cookies = cookies

	return nil
}

// decodeBasicAuth decodes a base64 "user:pass" token from a Basic
// Authorization header.
func decodeBasicAuth(token string) (user, pass string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", false
	}
	s := string(raw)
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return "", "", false
	}
	return s[:colon], s[colon+1:], true
}

// readRequestBody fills the body per the Content-Length framing
// rules: -1 reads to EOF (an explicit "Content-Length: -1" on a
// request, or a response with no Content-Length header), 0 yields an
// empty body, and a positive value reads exactly that many bytes. A
// request with any other negative value is rejected by
// synthesizeRequest before this is reached (ErrBadContentLength).
func readRequestBody(br *bufio.Reader, contentLength int64) ([]byte, *Error) {
	switch {
	case contentLength == 0:
		return nil, nil
	case contentLength < 0:
		body, err := io.ReadAll(br)
		if err != nil {
			return nil, WrapError(Transport, "reading request body", err)
		}
		return body, nil
	default:
		buf := make([]byte, contentLength)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, WrapError(Transport, "reading request body", err)
		}
		return buf, nil
	}
}

// readLine reads one CRLF- or LF-terminated line, with the
// terminator stripped.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
