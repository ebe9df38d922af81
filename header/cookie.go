package header

import (
	"strconv"
	"strings"
	"time"

	"github.com/aberic/starry/internal/clock"
)

// SameSite restricts third-party use of a cookie.
type SameSite int

const (
	SameSiteDefault SameSite = iota
	SameSiteNone
	SameSiteLax
	SameSiteStrict
)

func (s SameSite) String() string {
	switch s {
	case SameSiteNone:
		return "None"
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	default:
		return ""
	}
}

// Cookie is a name/value pair plus the optional Set-Cookie attributes.
type Cookie struct {
	Name       string
	Value      string
	Path       string
	Domain     string
	Expires    time.Time
	HasExpires bool
	MaxAge     int
	HasMaxAge  bool
	Secure     bool
	HttpOnly   bool
	SameSite   SameSite
}

// String renders c in Set-Cookie wire form.
func (c Cookie) String() string {
	if c.Name == "" || c.Value == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte('=')
	sb.WriteString(c.Value)
	if c.Path != "" {
		sb.WriteString("; Path=")
		sb.WriteString(c.Path)
	}
	if c.Domain != "" {
		sb.WriteString("; Domain=")
		sb.WriteString(c.Domain)
	}
	if c.HasExpires {
		sb.WriteString("; Expires=")
		sb.WriteString(clock.FormatGMT(c.Expires))
	}
	if c.HttpOnly {
		sb.WriteString("; HttpOnly")
	}
	if c.Secure {
		sb.WriteString("; Secure")
	}
	if c.HasMaxAge {
		sb.WriteString("; Max-Age=")
		sb.WriteString(strconv.Itoa(c.MaxAge))
	}
	if c.SameSite != SameSiteDefault {
		sb.WriteString("; SameSite=")
		sb.WriteString(c.SameSite.String())
	}
	return sb.String()
}

// ReadSetCookies parses every Set-Cookie header value into a Cookie.
// Unknown attributes carrying a value are treated as the primary
// name=value pair.
func (h Header) ReadSetCookies() ([]Cookie, error) {
	var out []Cookie
	for _, raw := range h[SetCookie] {
		var c Cookie
		for _, part := range strings.Split(strings.TrimSpace(raw), ";") {
			kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
			key := kv[0]
			hasValue := len(kv) == 2
			var value string
			if hasValue {
				value = kv[1]
			}
			switch strings.ToLower(key) {
			case "path":
				if hasValue {
					c.Path = value
				}
			case "domain":
				if hasValue {
					c.Domain = value
				}
			case "expires":
				if hasValue {
					t, err := clock.ParseGMT(value)
					if err != nil {
						return nil, err
					}
					c.Expires = t
					c.HasExpires = true
				}
			case "max-age":
				if hasValue {
					n, err := strconv.Atoi(value)
					if err != nil {
						return nil, err
					}
					c.MaxAge = n
					c.HasMaxAge = true
				}
			case "secure":
				c.Secure = true
			case "httponly":
				c.HttpOnly = true
			case "samesite":
				if hasValue {
					switch strings.ToLower(value) {
					case "none":
						c.SameSite = SameSiteNone
					case "strict":
						c.SameSite = SameSiteStrict
					case "lax":
						c.SameSite = SameSiteLax
					}
				}
			default:
				if hasValue {
					c.Name = key
					c.Value = value
				}
				// no value and unrecognized: ignored, matching the
				// original's silent `continue`.
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadCookies parses every Cookie header value, splitting on ";" then
// "=". filter, if non-empty, restricts the result to that cookie name.
// A fragment that doesn't split into exactly one "name=value" pair is
// an error.
func (h Header) ReadCookies(filter string) ([]Cookie, error) {
	var out []Cookie
	for _, raw := range h[Cookie] {
		for _, part := range strings.Split(strings.TrimSpace(raw), ";") {
			kv := strings.Split(strings.TrimSpace(part), "=")
			if len(kv) != 2 {
				return nil, errInvalidCookieFragment(part)
			}
			if filter == "" || kv[0] == filter {
				out = append(out, Cookie{Name: kv[0], Value: kv[1]})
			}
		}
	}
	return out, nil
}

type errInvalidCookieFragment string

func (e errInvalidCookieFragment) Error() string {
	return "cookie's value invalid! can not support " + string(e)
}
