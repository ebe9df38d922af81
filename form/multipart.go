package form

import (
	"strings"
)

// MultipartResult is the outcome of parsing a multipart/form-data
// body: plain fields land in Values, file parts land in Files keyed
// by their form field name.
type MultipartResult struct {
	Values Values
	Files  map[string]FileHeader
}

type multipartState int

const (
	stateBoundary multipartState = iota
	stateDisposition
	stateBlankLineBeforeValue
	stateValueAccumulate
	stateContentTypeLine
	stateBlankLineBeforeFile
	stateFileAccumulate
)

type parseError string

func (e parseError) Error() string { return string(e) }

// ParseMultipart runs the line-based boundary state machine over body
// (a multipart/form-data payload) using boundary (without the leading
// "--"). Each part's accumulated content has its trailing newline
// trimmed, since that newline belongs to the following boundary line,
// not the part's payload.
func ParseMultipart(body string, boundary string) (MultipartResult, error) {
	result := MultipartResult{Values: Values{}, Files: map[string]FileHeader{}}
	delim := "--" + boundary
	final := delim + "--"

	lines := splitLinesKeepNone(body)

	state := stateBoundary
	var name, filename, contentType string
	var content strings.Builder

	flush := func() {
		text := strings.TrimSuffix(content.String(), "\n")
		text = strings.TrimSuffix(text, "\r")
		if filename != "" || contentType != "" {
			result.Files[name] = FileHeader{
				Filename:    filename,
				Size:        len(text),
				Content:     []byte(text),
				ContentType: contentType,
			}
		} else {
			result.Values.Set(name, text)
		}
		name, filename, contentType = "", "", ""
		content.Reset()
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimRight(line, "\r")

		switch state {
		case stateBoundary:
			if trimmed == final {
				return result, nil
			}
			if trimmed != delim {
				return MultipartResult{}, parseError("multipart: expected boundary line")
			}
			state = stateDisposition

		case stateDisposition:
			n, f, err := parseDisposition(trimmed)
			if err != nil {
				return MultipartResult{}, err
			}
			name, filename = n, f
			if filename != "" {
				state = stateContentTypeLine
			} else {
				state = stateBlankLineBeforeValue
			}

		case stateBlankLineBeforeValue:
			if trimmed != "" {
				return MultipartResult{}, parseError("multipart: expected blank line before value")
			}
			state = stateValueAccumulate

		case stateContentTypeLine:
			ct, ok := parseContentTypeLine(trimmed)
			if !ok {
				return MultipartResult{}, parseError("multipart: expected content-type line")
			}
			contentType = ct
			state = stateBlankLineBeforeFile

		case stateBlankLineBeforeFile:
			if trimmed != "" {
				return MultipartResult{}, parseError("multipart: expected blank line after content-type")
			}
			state = stateFileAccumulate

		case stateValueAccumulate, stateFileAccumulate:
			if trimmed == delim || trimmed == final {
				flush()
				if trimmed == final {
					return result, nil
				}
				state = stateDisposition
				continue
			}
			content.WriteString(line)
			content.WriteByte('\n')
		}
	}
	return MultipartResult{}, parseError("multipart: unexpected end of body")
}

// splitLinesKeepNone splits body on "\n" without discarding a final
// empty trailing segment; callers see an exact line-for-line replay.
func splitLinesKeepNone(body string) []string {
	return strings.Split(body, "\n")
}

func parseDisposition(line string) (name, filename string, err error) {
	const prefix = "Content-Disposition: form-data;"
	if !strings.HasPrefix(line, prefix) {
		return "", "", parseError("multipart: expected Content-Disposition line")
	}
	rest := line[len(prefix):]
	for _, field := range strings.Split(rest, ";") {
		field = strings.TrimSpace(field)
		if v, ok := quotedValue(field, "name="); ok {
			name = v
		} else if v, ok := quotedValue(field, "filename="); ok {
			filename = v
		}
	}
	if name == "" {
		return "", "", parseError("multipart: part missing name")
	}
	return name, filename, nil
}

func parseContentTypeLine(line string) (string, bool) {
	const prefix = "Content-Type: "
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return line[len(prefix):], true
}

func quotedValue(field, prefix string) (string, bool) {
	if !strings.HasPrefix(field, prefix) {
		return "", false
	}
	v := field[len(prefix):]
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1], true
	}
	return v, true
}
