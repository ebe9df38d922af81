package starry

import "testing"

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"":        MethodGet,
		"GET":     MethodGet,
		"PUT":     MethodPut,
		"PRI":     MethodPri,
		"POST":    MethodPost,
		"HEAD":    MethodHead,
		"LINK":    MethodLink,
		"PATCH":   MethodPatch,
		"TRACE":   MethodTrace,
		"DELETE":  MethodDelete,
		"UNLINK":  MethodUnlink,
		"OPTIONS": MethodOptions,
		"CONNECT": MethodConnect,
	}
	for in, want := range cases {
		got, err := ParseMethod([]byte(in))
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMethod(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMethodInvalid(t *testing.T) {
	if _, err := ParseMethod([]byte("omg")); err == nil {
		t.Fatal("expected error for invalid method")
	}
}

func TestMethodProperties(t *testing.T) {
	if !MethodGet.IsSafe() || !MethodHead.IsSafe() || !MethodOptions.IsSafe() || !MethodTrace.IsSafe() {
		t.Fatal("expected GET/HEAD/OPTIONS/TRACE to be safe")
	}
	if MethodPut.IsSafe() || MethodPost.IsSafe() {
		t.Fatal("expected PUT/POST to not be safe")
	}
	if !MethodPut.IsIdempotent() || !MethodDelete.IsIdempotent() {
		t.Fatal("expected PUT/DELETE to be idempotent")
	}
	if MethodGet.IsIdempotent() || MethodPost.IsIdempotent() {
		t.Fatal("expected GET/POST to not be idempotent in this closed set")
	}
	if !MethodGet.IsCacheable() || !MethodHead.IsCacheable() || !MethodPost.IsCacheable() {
		t.Fatal("expected GET/HEAD/POST to be cacheable")
	}
	if MethodPut.IsCacheable() {
		t.Fatal("expected PUT to not be cacheable")
	}
}
