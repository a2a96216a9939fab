package triplify

import (
	"bytes"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// MediaRange is a declared media type with a quality weight, e.g.
// "text/html;q=0.01".
type MediaRange struct {
	Type    string
	Quality float64
}

// ParseMediaRange parses a media type with an optional q parameter.
// Other parameters are ignored. Quality defaults to 1.
func ParseMediaRange(s string) (MediaRange, error) {
	mediaType, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaRange{}, Errorf(EINVALID, "invalid media type %q: %v", s, err)
	}
	mr := MediaRange{Type: mediaType, Quality: 1}
	if q, ok := params["q"]; ok {
		f, err := strconv.ParseFloat(q, 64)
		if err != nil || f < 0 || f > 1 {
			return MediaRange{}, Errorf(EINVALID, "invalid quality %q in %q", q, s)
		}
		mr.Quality = f
	}
	return mr, nil
}

// MustParseMediaRanges parses each declaration and panics on the first error.
func MustParseMediaRanges(decls ...string) []MediaRange {
	ranges := make([]MediaRange, 0, len(decls))
	for _, d := range decls {
		mr, err := ParseMediaRange(d)
		if err != nil {
			panic(err)
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// Matches reports whether contentType falls within the range. Parameters on
// contentType (charset etc.) are ignored; "type/*" and "*/*" match subtypes.
func (m MediaRange) Matches(contentType string) bool {
	base := BaseMediaType(contentType)
	if base == "" {
		return false
	}
	if m.Type == "*/*" || m.Type == base {
		return true
	}
	if major, ok := strings.CutSuffix(m.Type, "/*"); ok {
		return strings.HasPrefix(base, major+"/")
	}
	return false
}

func (m MediaRange) String() string {
	return m.Type + ";q=" + strconv.FormatFloat(m.Quality, 'f', -1, 64)
}

// BaseMediaType returns the lower-cased media type without parameters,
// or "" if contentType cannot be parsed.
func BaseMediaType(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Tolerate junk parameters such as "text/html; charset".
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
		if !strings.Contains(mediaType, "/") {
			return ""
		}
	}
	return mediaType
}

// IsMarkup reports whether contentType denotes HTML or XHTML.
func IsMarkup(contentType string) bool {
	switch BaseMediaType(contentType) {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

var ntriplesLine = regexp.MustCompile(`^\s*(<[^>]*>|_:\S+)\s+<[^>]*>\s+.+\.\s*$`)

// DetectContentType guesses the media type of content. It recognizes
// N-Triples statements and otherwise defers to
// http.DetectContentType. Used only for best-effort auto-detection.
func DetectContentType(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}
	if first, _, _ := bytes.Cut(trimmed, []byte("\n")); ntriplesLine.Match(first) {
		return "application/n-triples"
	}
	if bytes.Contains(trimmed[:min(len(trimmed), 512)], []byte("http://www.w3.org/1999/xhtml")) {
		return "application/xhtml+xml"
	}
	return BaseMediaType(http.DetectContentType(content))
}
