// Package form parses the two request body encodings this module
// understands: application/x-www-form-urlencoded and
// multipart/form-data. Both are lazy, single-shot operations driven
// from the request's raw body bytes.
package form

import (
	"strings"

	"github.com/aberic/starry/url"
)

// Values is the key/value map shared by query parameters and
// urlencoded form bodies.
type Values = url.Values

// FileHeader describes one multipart file part: its field name comes
// from the caller's lookup key, not a field on this struct, matching
// the map-of-parts shape the rest of this module uses.
type FileHeader struct {
	Filename    string
	Size        int
	Content     []byte
	ContentType string
}

// ParseURLEncoded decodes "key=value&key2=value2" bodies. Both sides
// of "=" tolerate being empty ("11=22&44=55&77=&=222" yields four
// entries, including one keyed "").
func ParseURLEncoded(body string) Values {
	v := Values{}
	if body == "" {
		return v
	}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			v.Set(pair, "")
			continue
		}
		v.Set(pair[:eq], pair[eq+1:])
	}
	return v
}
