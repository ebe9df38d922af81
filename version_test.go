package starry

import "testing"

func TestParseVersion(t *testing.T) {
	cases := map[string]Version{
		"HTTP/1.0": HTTP10,
		"HTTP/1.1": HTTP11,
		"HTTP/2.0": HTTP20,
	}
	for in, want := range cases {
		got, err := ParseVersion([]byte(in))
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseVersion(%q) = %v, want %v", in, got, want)
		}
		if got.String() != in {
			t.Errorf("String() = %q, want %q", got.String(), in)
		}
	}
}

func TestParseVersionInvalid(t *testing.T) {
	if _, err := ParseVersion([]byte("HTTP/0.9")); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
