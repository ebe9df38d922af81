package server

import (
	"strings"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/form"
	"github.com/aberic/starry/header"
	starryurl "github.com/aberic/starry/url"
)

// Context carries one request/response pair through a Router's filter
// chain and handler. A filter or handler commits the response exactly
// once, by calling one of the response-writing methods below; after
// that, Executed reports true and the connection loop stops running
// any remaining filters or the handler itself.
type Context struct {
	Request  *starry.Request
	Response starry.Response

	fields map[string]string

	executed bool
}

// NewContext builds a Context for a parsed request, seeding its
// Response with the request's HTTP version.
func NewContext(req *starry.Request) *Context {
	return &Context{
		Request:  req,
		Response: starry.NewResponse(req.Version),
	}
}

// bindFields attaches the wildcard path segments a router lookup
// extracted, keyed by the pattern's :name.
func (c *Context) bindFields(fields map[string]string) {
	c.fields = fields
}

// Field returns a named path segment bound by the matched route
// pattern, e.g. ":id" in "/users/:id".
func (c *Context) Field(name string) (string, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// Query returns the parsed query-string values for the request URL.
func (c *Context) Query() starryurl.Values {
	return c.Request.FormParam()
}

// Form returns the parsed application/x-www-form-urlencoded body.
func (c *Context) Form() starryurl.Values {
	return c.Request.Form()
}

// MultipartForm returns the parsed multipart/form-data body.
func (c *Context) MultipartForm() form.MultipartResult {
	return c.Request.MultipartForm()
}

// Header returns a request header value, or "" if absent.
func (c *Context) Header(name string) string {
	return c.Request.Header.Get(name)
}

// Cookie returns a named request cookie.
func (c *Context) Cookie(name string) (header.Cookie, bool) {
	for _, ck := range c.Request.Cookies {
		if ck.Name == name {
			return ck, true
		}
	}
	return header.Cookie{}, false
}

// Userinfo returns the Basic Authorization credentials carried on the
// request URL, if any were present.
func (c *Context) Userinfo() (*starryurl.Userinfo, bool) {
	ui := c.Request.URL.Authority.Userinfo
	return ui, ui != nil
}

// Path returns the request's path, without the query string. A
// "#fragment" is not split off the path when no query precedes it.
func (c *Context) Path() string {
	return c.Request.URL.Location.Path
}

// ClientAddr returns the remote address the connection was accepted
// from.
func (c *Context) ClientAddr() string {
	return c.Request.ClientAddr
}

// IsWebsocketUpgrade reports whether the request carries the header
// pair a websocket handshake requires. starry does not implement the
// handshake or framing itself; a handler that sees true is expected to
// hijack the connection through some other mechanism, or reject it.
func (c *Context) IsWebsocketUpgrade() bool {
	conn := c.Request.Header.Get(header.Connection)
	upgrade := c.Request.Header.Get("Upgrade")
	return containsToken(conn, "upgrade") && strings.EqualFold(upgrade, "websocket")
}

func containsToken(csv, token string) bool {
	for _, part := range strings.Split(csv, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// Executed reports whether a response has already been committed for
// this request.
func (c *Context) Executed() bool {
	return c.executed
}

// AddHeader appends a response header value.
func (c *Context) AddHeader(name, value string) {
	c.Response.Header.Add(name, value)
}

// SetHeader sets a response header value, replacing any existing one.
func (c *Context) SetHeader(name, value string) {
	c.Response.Header.Set(name, value)
}

// SetCookie appends a Set-Cookie response header.
func (c *Context) SetCookie(ck header.Cookie) {
	c.Response.SetCookie(ck)
}

// WriteStatus commits the response with the given status and an empty
// body. A second call is a no-op.
func (c *Context) WriteStatus(status starry.Status) {
	if c.executed {
		return
	}
	c.Response.SetStatus(status)
	c.executed = true
}

// WriteBody commits the response with status, contentType, and body.
// A second call is a no-op.
func (c *Context) WriteBody(status starry.Status, contentType string, body []byte) {
	if c.executed {
		return
	}
	c.Response.SetStatus(status)
	c.Response.SetBody(contentType, body)
	c.Response.Compress = true
	c.executed = true
}

// WriteError commits a response derived from a starry.Error's mapped
// HTTP status and message.
func (c *Context) WriteError(err *starry.Error) {
	if c.executed {
		return
	}
	status, statusErr := starry.StatusFromCode(uint16(err.HTTPStatus()))
	if statusErr != nil {
		status = starry.StatusInternalServerError
	}
	c.WriteBody(status, "text/plain; charset=utf-8", []byte(err.Error()))
}
