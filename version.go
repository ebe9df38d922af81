package starry

// Version is the closed set of protocol versions this module can
// parse on the wire. HTTP/2.0 is recognized only so a request line
// naming it can be classified and rejected (§ non-goals: no HTTP/2
// framing is implemented).
type Version struct {
	Major uint8
	Minor uint8
}

var (
	HTTP10 = Version{Major: 1, Minor: 0}
	HTTP11 = Version{Major: 1, Minor: 1}
	HTTP20 = Version{Major: 2, Minor: 0}
)

func (v Version) String() string {
	switch v {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	case HTTP20:
		return "HTTP/2.0"
	default:
		return "HTTP/1.1"
	}
}

type errUnsupportedVersion struct{}

func (errUnsupportedVersion) Error() string {
	return "version is not support except HTTP/1.0 HTTP/1.1 HTTP/2.0!"
}

// ParseVersion decodes a request/response-line version token.
func ParseVersion(src []byte) (Version, error) {
	switch string(src) {
	case "HTTP/1.0":
		return HTTP10, nil
	case "HTTP/1.1":
		return HTTP11, nil
	case "HTTP/2.0":
		return HTTP20, nil
	default:
		return Version{}, errUnsupportedVersion{}
	}
}

// DefaultVersion is HTTP/1.1, used when a builder omits one.
var DefaultVersion = HTTP11
