package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/header"
	"github.com/sirupsen/logrus"
)

// conn owns one accepted TCP connection for its whole lifetime: it
// reads and dispatches requests until the peer or either side's
// timeout ends the keep-alive loop, then closes the socket.
type conn struct {
	srv *Server
	raw net.Conn
	id  string

	logger     *logrus.Entry
	limited    *limitedReader
	br         *bufio.Reader
	lastMethod starry.Method
}

// limitedReader bounds how many bytes ParseRequest may pull off the
// wire for a single request, reset at the start of each keep-alive
// iteration. A zero limit means unbounded.
type limitedReader struct {
	r     io.Reader
	limit int64
	read  int64
}

func (l *limitedReader) reset(limit int64) {
	l.limit = limit
	l.read = 0
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.limit > 0 && l.read >= l.limit {
		return 0, starry.ErrBodyTooLarge
	}
	if l.limit > 0 {
		if remaining := l.limit - l.read; int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	return n, err
}

// serve runs the read-dispatch-write loop for one connection. It
// always closes the underlying socket before returning, including
// when a task-pool-recovered panic unwinds through it.
func (c *conn) serve() {
	defer c.raw.Close()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorf("panic serving connection: %v", r)
		}
	}()

	c.limited = &limitedReader{r: c.raw}
	c.br = bufio.NewReader(c.limited)

	for {
		c.limited.reset(c.srv.MaxRequestBytes)

		if d := c.srv.ReadTimeout; d != 0 {
			c.raw.SetReadDeadline(time.Now().Add(d))
		}

		if c.lastMethod == starry.MethodPost {
			if peek, err := c.br.Peek(4); err == nil {
				if n := numLeadingCROrLF(peek); n > 0 {
					c.br.Discard(n)
				}
			}
		}

		req, parseErr := starry.ParseRequest(c.br, c.raw.RemoteAddr().String())
		if parseErr != nil {
			if parseErr.Kind == starry.Transport && errors.Is(parseErr.Cause, io.EOF) {
				return // peer closed an idle keep-alive connection; nothing to reply to
			}
			var limitErr *starry.Error
			if errors.As(parseErr.Cause, &limitErr) {
				parseErr = limitErr
			}
			c.writeError(req, parseErr)
			return
		}
		c.lastMethod = req.Method

		if d := c.srv.WriteTimeout; d != 0 {
			c.raw.SetWriteDeadline(time.Now().Add(d))
		}

		ctx := NewContext(req)
		c.srv.Router.dispatch(ctx)

		resp := ctx.Response
		resp.Close = resp.Close || req.Close
		if !resp.Close {
			resp.Header.Set(header.Connection, "keep-alive")
		}

		out := starry.SerializeResponse(&resp, req.AcceptEncoding)
		if _, err := c.raw.Write(out); err != nil {
			c.logger.Warnf("write failed: %v", err)
			return
		}

		if resp.Close {
			return
		}

		if d := c.srv.IdleTimeout; d != 0 {
			c.raw.SetReadDeadline(time.Now().Add(d))
			if _, err := c.br.Peek(1); err != nil {
				return
			}
			c.raw.SetReadDeadline(time.Time{})
		}
	}
}

// writeError writes a minimal diagnostic response for a request that
// failed to parse, using req's version if parsing got far enough to
// know it, and closes the connection afterward.
func (c *conn) writeError(req *starry.Request, err *starry.Error) {
	version := starry.DefaultVersion
	acceptEncoding := ""
	if req != nil {
		version = req.Version
		acceptEncoding = req.AcceptEncoding
	}
	resp := starry.NewResponse(version)
	status, statusErr := starry.StatusFromCode(uint16(err.HTTPStatus()))
	if statusErr != nil {
		status = starry.StatusInternalServerError
	}
	resp.SetStatus(status)
	resp.SetBody("text/plain; charset=utf-8", []byte(err.Error()))
	resp.Close = true

	out := starry.SerializeResponse(&resp, acceptEncoding)
	c.raw.Write(out)
}
