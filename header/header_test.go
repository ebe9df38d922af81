package header

import "testing"

func TestAddSetGetDel(t *testing.T) {
	h := New()
	h.Add("X-Foo", "1")
	h.Add("X-Foo", "2")
	if got := h.Get("X-Foo"); got != "1" {
		t.Fatalf("Get = %q, want 1", got)
	}
	if vv := h.Values("X-Foo"); len(vv) != 2 {
		t.Fatalf("Values len = %d, want 2", len(vv))
	}
	h.Set("X-Foo", "3")
	if got := h.Get("X-Foo"); got != "3" {
		t.Fatalf("Get after Set = %q, want 3", got)
	}
	h.Del("X-Foo")
	if h.Has("X-Foo") {
		t.Fatal("expected X-Foo removed")
	}
}

func TestCaseSensitiveKeys(t *testing.T) {
	h := New()
	h.Set("Host", "example.com")
	h.Set("host", "other.com")
	if got := h.Get("Host"); got != "example.com" {
		t.Fatalf("Get(Host) = %q, want example.com", got)
	}
	if got := h.Get("host"); got != "other.com" {
		t.Fatalf("Get(host) = %q, want other.com", got)
	}
}

func TestCheckClose(t *testing.T) {
	tests := []struct {
		major, minor int
		connection   string
		want         bool
	}{
		{0, 9, "", true},
		{1, 0, "", true},
		{1, 0, "keep-alive", false},
		{1, 1, "", false},
		{1, 1, "close", true},
	}
	for _, tt := range tests {
		h := New()
		if tt.connection != "" {
			h.Set(Connection, tt.connection)
		}
		if got := h.CheckClose(tt.major, tt.minor, false); got != tt.want {
			t.Errorf("CheckClose(%d.%d, %q) = %v, want %v", tt.major, tt.minor, tt.connection, got, tt.want)
		}
	}
}

func TestAcceptEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"br, gzip, deflate", "gzip"},
		{"br", ""},
		{"deflate, zlib", "deflate"},
		{"zlib", "zlib"},
		{"", ""},
	}
	for _, tt := range tests {
		h := New()
		if tt.in != "" {
			h.Set(AcceptEncoding, tt.in)
		}
		if got := h.GetAcceptEncoding(); got != tt.want {
			t.Errorf("GetAcceptEncoding(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentLength(t *testing.T) {
	h := New()
	if _, ok := h.GetContentLength(); ok {
		t.Fatal("expected no content-length")
	}
	h.SetContentLength(42)
	n, ok := h.GetContentLength()
	if !ok || n != 42 {
		t.Fatalf("GetContentLength = (%d, %v), want (42, true)", n, ok)
	}
	h.DelContentLength()
	if _, ok := h.GetContentLength(); ok {
		t.Fatal("expected content-length removed")
	}
}

func TestReadCookies(t *testing.T) {
	h := New()
	h.Add(Cookie, "a=1; b=2")
	cks, err := h.ReadCookies("")
	if err != nil {
		t.Fatalf("ReadCookies: %v", err)
	}
	if len(cks) != 2 || cks[0].Name != "a" || cks[1].Value != "2" {
		t.Fatalf("unexpected cookies: %+v", cks)
	}

	filtered, err := h.ReadCookies("b")
	if err != nil {
		t.Fatalf("ReadCookies filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "b" {
		t.Fatalf("unexpected filtered cookies: %+v", filtered)
	}
}

func TestReadCookiesRejectsMalformedFragment(t *testing.T) {
	h := New()
	h.Add(Cookie, "a=1; Secure")
	if _, err := h.ReadCookies(""); err == nil {
		t.Fatal("expected error for malformed fragment")
	}
}

func TestReadSetCookiesRoundTrip(t *testing.T) {
	c := Cookie{Name: "sid", Value: "abc", Path: "/", Secure: true, HttpOnly: true, MaxAge: 10, HasMaxAge: true, SameSite: SameSiteLax}
	h := New()
	h.Add(SetCookie, c.String())
	got, err := h.ReadSetCookies()
	if err != nil {
		t.Fatalf("ReadSetCookies: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	g := got[0]
	if g.Name != c.Name || g.Value != c.Value || g.Path != c.Path || g.Secure != c.Secure ||
		g.HttpOnly != c.HttpOnly || g.MaxAge != c.MaxAge || g.SameSite != c.SameSite {
		t.Fatalf("round trip mismatch: got %+v, want %+v", g, c)
	}
}
