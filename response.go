package starry

import "github.com/aberic/starry/header"

// Response is a staged, single-shot response builder. A handler
// mutates Status/Header/body through the setters below; Body() drains
// the staged payload and clears Content-Length/Content-Type, so it can
// only be read once per response.
type Response struct {
	Version  Version
	Status   Status
	Header   header.Header
	Compress bool
	Close    bool

	body []byte
}

// NewResponse returns a 200 OK response with an empty header map.
func NewResponse(version Version) Response {
	return Response{Version: version, Status: StatusOK, Header: header.New()}
}

// SetStatus sets the response status line.
func (r *Response) SetStatus(s Status) {
	r.Status = s
}

// SetBody stages body bytes, updating Content-Length and Content-Type.
func (r *Response) SetBody(contentType string, body []byte) {
	r.body = body
	r.Header.SetContentLength(int64(len(body)))
	r.Header.SetContentType(contentType)
}

// SetCookie appends a Set-Cookie header for c.
func (r *Response) SetCookie(c header.Cookie) {
	if s := c.String(); s != "" {
		r.Header.Add(header.SetCookie, s)
	}
}

// Body drains and returns the staged body bytes. This is destructive:
// it clears Content-Length and Content-Type, and a second call returns
// nil — the serializer that calls this is expected to run exactly
// once per response.
func (r *Response) Body() []byte {
	b := r.body
	r.body = nil
	r.Header.DelContentLength()
	r.Header.Del(header.ContentType)
	return b
}
