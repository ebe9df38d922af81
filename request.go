package starry

import (
	"strings"

	"github.com/aberic/starry/form"
	"github.com/aberic/starry/header"
	starryurl "github.com/aberic/starry/url"
)

// Request is a fully parsed incoming (server) or outgoing (client)
// message. Its header map, body bytes, and parsed forms belong to it
// alone; a handler mutates them only until it returns, after which the
// codec that built the Request discards it.
type Request struct {
	Method         Method
	URL            starryurl.URL
	Version        Version
	Header         header.Header
	Body           []byte
	ContentLength  int64
	AcceptEncoding string
	Close          bool
	Host           string
	ContentType    string
	Cookies        []header.Cookie
	ClientAddr     string

	bodyParsed    bool
	form          starryurl.Values
	multipartForm form.MultipartResult
}

// FormParam returns the query string parameters parsed from the URL.
func (r *Request) FormParam() starryurl.Values {
	return r.URL.Location.Query
}

// Form lazily parses an application/x-www-form-urlencoded body on
// first call and caches the result; subsequent calls return the same
// Values without re-parsing, and the raw body is considered consumed.
func (r *Request) Form() starryurl.Values {
	r.parseBodyOnce()
	return r.form
}

// MultipartForm lazily parses a multipart/form-data body on first
// call. Like Form, it shares the single-shot body-parsed flag: the
// body is parsed once, on the first call to either accessor, as the
// request's Content-Type says. Form returns nil for a multipart body,
// and MultipartForm returns an empty result for a urlencoded body or
// a multipart body that fails to parse.
func (r *Request) MultipartForm() form.MultipartResult {
	r.parseBodyOnce()
	return r.multipartForm
}

func (r *Request) parseBodyOnce() {
	if r.bodyParsed {
		return
	}
	r.bodyParsed = true
	switch {
	case strings.HasPrefix(r.ContentType, "application/x-www-form-urlencoded"):
		r.form = form.ParseURLEncoded(string(r.Body))
	case strings.HasPrefix(r.ContentType, "multipart/form-data"):
		boundary := multipartBoundary(r.ContentType)
		result, err := form.ParseMultipart(string(r.Body), boundary)
		if err == nil {
			r.multipartForm = result
		}
	}
}

// multipartBoundary extracts the "boundary=" parameter from a
// Content-Type header value.
func multipartBoundary(contentType string) string {
	const key = "boundary="
	idx := strings.Index(contentType, key)
	if idx < 0 {
		return ""
	}
	v := contentType[idx+len(key):]
	if len(v) >= 2 && v[0] == '"' {
		if end := strings.Index(v[1:], "\""); end >= 0 {
			return v[1 : end+1]
		}
	}
	if semi := strings.Index(v, ";"); semi >= 0 {
		return v[:semi]
	}
	return v
}
