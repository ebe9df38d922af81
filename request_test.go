package starry

import (
	"testing"

	"github.com/aberic/starry/header"
)

func TestRequestFormLazyParse(t *testing.T) {
	r := &Request{ContentType: "application/x-www-form-urlencoded", Body: []byte("11=22&44=55&77=&=222")}
	v := r.Form()
	if v.Get("11") != "22" || v.Get("44") != "55" || v.Get("77") != "" || v.Get("") != "222" {
		t.Fatalf("unexpected form: %v", v)
	}
	// second call returns cached result without re-parsing a mutated body
	r.Body = nil
	v2 := r.Form()
	if v2.Get("11") != "22" {
		t.Fatalf("expected cached form, got %v", v2)
	}
}

func TestRequestMultipartBoundaryExtraction(t *testing.T) {
	got := multipartBoundary(`multipart/form-data; boundary=B`)
	if got != "B" {
		t.Errorf("multipartBoundary = %q, want B", got)
	}
	got = multipartBoundary(`multipart/form-data; boundary="with space"`)
	if got != "with space" {
		t.Errorf("multipartBoundary(quoted) = %q, want %q", got, "with space")
	}
}

func TestResponseBodyDrainClearsContentLength(t *testing.T) {
	resp := NewResponse(HTTP11)
	resp.SetBody("text/plain", []byte("hello"))
	if n, ok := resp.Header.GetContentLength(); !ok || n != 5 {
		t.Fatalf("GetContentLength = (%d, %v), want (5, true)", n, ok)
	}
	body := resp.Body()
	if string(body) != "hello" {
		t.Fatalf("Body() = %q, want hello", body)
	}
	if _, ok := resp.Header.GetContentLength(); ok {
		t.Fatal("expected Content-Length cleared after drain")
	}
	if resp.Header.GetContentType() != "" {
		t.Fatal("expected Content-Type cleared after drain")
	}
	if second := resp.Body(); second != nil {
		t.Fatalf("second Body() = %v, want nil", second)
	}
}

func TestResponseSetCookie(t *testing.T) {
	resp := NewResponse(HTTP11)
	resp.SetCookie(header.Cookie{Name: "sid", Value: "abc"})
	if got := resp.Header.Get(header.SetCookie); got != "sid=abc" {
		t.Errorf("Set-Cookie = %q, want sid=abc", got)
	}
}
