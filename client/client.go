package client

import (
	"bufio"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/header"
	starryurl "github.com/aberic/starry/url"
)

// HttpClient sends requests over a Pool of reused TCP connections,
// one per distinct host.
type HttpClient struct {
	pool *Pool
}

// NewHttpClient returns an HttpClient backed by a freshly created
// Pool configured by opts.
func NewHttpClient(opts Options) *HttpClient {
	return &HttpClient{pool: NewPool(opts)}
}

// Get issues a GET request to rawURL.
func (c *HttpClient) Get(rawURL string) (*starry.Response, error) {
	return c.do(starry.MethodGet, rawURL, "", nil)
}

// Post issues a POST request to rawURL with the given body and
// content type.
func (c *HttpClient) Post(rawURL, contentType string, body []byte) (*starry.Response, error) {
	return c.do(starry.MethodPost, rawURL, contentType, body)
}

// Put issues a PUT request to rawURL with the given body and content
// type.
func (c *HttpClient) Put(rawURL, contentType string, body []byte) (*starry.Response, error) {
	return c.do(starry.MethodPut, rawURL, contentType, body)
}

// Delete issues a DELETE request to rawURL.
func (c *HttpClient) Delete(rawURL string) (*starry.Response, error) {
	return c.do(starry.MethodDelete, rawURL, "", nil)
}

func (c *HttpClient) do(method starry.Method, rawURL, contentType string, body []byte) (*starry.Response, error) {
	u, err := starryurl.Parse(rawURL)
	if err != nil {
		return nil, starry.WrapError(starry.MalformedRequest, "invalid URL "+rawURL, err)
	}

	req := &starry.Request{
		Method:      method,
		URL:         u,
		Version:     starry.HTTP11,
		Header:      header.New(),
		Body:        body,
		ContentType: contentType,
	}

	streamer, acqErr := c.pool.Acquire(u.Authority.Addr.String())
	if acqErr != nil {
		return nil, acqErr
	}

	out := starry.SerializeRequest(req)
	if _, werr := streamer.Conn.Write(out); werr != nil {
		streamer.retire()
		return nil, starry.WrapError(starry.Transport, "writing request", werr)
	}

	resp, perr := starry.ParseResponse(bufio.NewReader(streamer.Conn))
	if perr != nil {
		streamer.retire()
		return nil, perr
	}

	c.pool.Release(streamer, !resp.Close)
	return resp, nil
}

// Close releases every idle pooled streamer's watchdog. In-flight
// Acquire/Release calls racing with Close may still hand out or
// return a streamer after its host channel has been drained; callers
// that need a hard shutdown barrier should stop issuing requests
// first.
func (c *HttpClient) Close() {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()
	for _, ch := range c.pool.hosts {
	drain:
		for {
			select {
			case s := <-ch:
				s.retire()
			default:
				break drain
			}
		}
	}
}
