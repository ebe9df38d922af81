package header

import (
	"strconv"
	"strings"
)

// CheckClose reports whether the connection must be closed after this
// exchange, given the protocol version (major.minor) and this header's
// Connection value. When remove is true and HTTP/1.1 carries
// "Connection: close", the token is removed from the header (the
// caller already decided to close, so the header no longer needs to
// announce it on the wire again).
//
// Rules:
//   - major < 1: always close.
//   - 1.0: close unless Connection contains "keep-alive".
//   - 1.1+: close only if Connection contains "close".
func (h Header) CheckClose(major, minor int, remove bool) bool {
	if major < 1 {
		return true
	}
	tokens := h.connectionTokens()
	if major == 1 && minor == 0 {
		return !containsToken(tokens, "keep-alive")
	}
	if containsToken(tokens, "close") {
		if remove {
			h.removeConnectionToken("close")
		}
		return true
	}
	return false
}

func (h Header) connectionTokens() []string {
	var tokens []string
	for _, v := range h[Connection] {
		for _, tok := range strings.Split(v, ",") {
			tokens = append(tokens, strings.ToLower(strings.TrimSpace(tok)))
		}
	}
	return tokens
}

func (h Header) removeConnectionToken(token string) {
	var kept []string
	for _, v := range h[Connection] {
		var parts []string
		for _, tok := range strings.Split(v, ",") {
			if strings.ToLower(strings.TrimSpace(tok)) != token {
				parts = append(parts, strings.TrimSpace(tok))
			}
		}
		if len(parts) > 0 {
			kept = append(kept, strings.Join(parts, ", "))
		}
	}
	if len(kept) == 0 {
		h.Del(Connection)
	} else {
		h[Connection] = kept
	}
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

// GetContentLength parses the Content-Length header. It returns ok=false
// when the header is absent or not a valid signed integer.
func (h Header) GetContentLength() (n int64, ok bool) {
	v := h.Get(ContentLength)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetContentLength writes n as the Content-Length header.
func (h Header) SetContentLength(n int64) {
	h.Set(ContentLength, strconv.FormatInt(n, 10))
}

// DelContentLength removes the Content-Length header.
func (h Header) DelContentLength() {
	h.Del(ContentLength)
}

// GetContentType returns the raw Content-Type header value.
func (h Header) GetContentType() string {
	return h.Get(ContentType)
}

// SetContentType writes the Content-Type header.
func (h Header) SetContentType(v string) {
	h.Set(ContentType, v)
}

// SetAcceptEncoding writes v as Accept-Encoding, unless v is empty or
// "br" (brotli is recognized on read but never offered).
func (h Header) SetAcceptEncoding(v string) {
	if v == "" || v == "br" {
		return
	}
	h.Set(AcceptEncoding, v)
}

// GetAcceptEncoding parses the comma-separated Accept-Encoding header
// and picks the best supported coding, preferring gzip over deflate
// over zlib. "br" is recognized but never selected. Returns "" if none
// of the supported codings are offered.
func (h Header) GetAcceptEncoding() string {
	have := map[string]bool{}
	for _, v := range h[AcceptEncoding] {
		for _, tok := range strings.Split(v, ",") {
			have[strings.ToLower(strings.TrimSpace(tok))] = true
		}
	}
	switch {
	case have["gzip"]:
		return "gzip"
	case have["deflate"]:
		return "deflate"
	case have["zlib"]:
		return "zlib"
	default:
		return ""
	}
}

// GetHost returns the Host header's value.
func (h Header) GetHost() string {
	return h.Get(Host)
}

// GetUserinfo extracts the (username, password) pair from a Basic
// Authorization header, decoding with decodeBasic. ok is false if the
// header is absent or not well-formed "Basic <base64>".
func (h Header) GetUserinfo(decodeBasic func(string) (string, string, bool)) (user, pass string, ok bool) {
	v := h.Get(Authorization)
	const prefix = "Basic "
	if !strings.HasPrefix(v, prefix) {
		return "", "", false
	}
	return decodeBasic(v[len(prefix):])
}
