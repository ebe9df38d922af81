package header

// Well-known header names. Comparisons elsewhere in this package are
// case-sensitive, so these constants must match the wire form the
// codec writes.
const (
	ContentLength    = "Content-Length"
	ContentType      = "Content-Type"
	Host             = "Host"
	Authorization    = "Authorization"
	Connection       = "Connection"
	AcceptEncoding   = "Accept-Encoding"
	Cookie           = "Cookie"
	SetCookie        = "Set-Cookie"
	Expect           = "Expect"
	TransferEncoding = "Transfer-Encoding"
	ContentEncoding  = "Content-Encoding"
)
