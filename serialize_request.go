package starry

import (
	"encoding/base64"
	"strings"

	"github.com/aberic/starry/header"
)

// SerializeRequest renders req as a request line, its headers, a
// blank line, and the body. It sets Host from req.URL's authority,
// Connection: keep-alive unless req.Close is set, and — when the URL
// carries userinfo — a Basic Authorization header, mirroring what a
// server would later parse back out with ParseRequest.
func SerializeRequest(req *Request) []byte {
	if req.Header == nil {
		req.Header = header.New()
	}

	host := req.URL.Authority.Addr.String()
	req.Header.Set(header.Host, host)

	if req.Close {
		req.Header.Set(header.Connection, "close")
	} else {
		req.Header.Set(header.Connection, "keep-alive")
	}

	if ui := req.URL.Authority.Userinfo; ui != nil {
		token := base64.StdEncoding.EncodeToString([]byte(ui.Username + ":" + ui.Password))
		req.Header.Set(header.Authorization, "Basic "+token)
	}

	req.Header.SetContentLength(int64(len(req.Body)))
	if req.ContentType != "" {
		req.Header.SetContentType(req.ContentType)
	}
	if req.AcceptEncoding != "" {
		req.Header.SetAcceptEncoding(req.AcceptEncoding)
	}

	path := req.URL.Location.Path
	var sb strings.Builder
	sb.WriteString(string(req.Method))
	sb.WriteByte(' ')
	sb.WriteString(path)
	if len(req.URL.Location.Query) > 0 {
		sb.WriteByte('?')
		writeQuery(&sb, req.URL.Location.Query)
	}
	sb.WriteByte(' ')
	sb.WriteString(req.Version.String())
	sb.WriteString("\r\n")

	req.Header.WriteTo(&sb)
	sb.WriteString("\r\n")

	out := make([]byte, 0, sb.Len()+len(req.Body))
	out = append(out, sb.String()...)
	out = append(out, req.Body...)
	return out
}

func writeQuery(sb *strings.Builder, query map[string][]string) {
	first := true
	for key, values := range query {
		for _, v := range values {
			if !first {
				sb.WriteByte('&')
			}
			first = false
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(v)
		}
	}
}
