package triplify

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	schemePattern    = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):(.*)$`)
	collapsedPattern = regexp.MustCompile(`^(?i)(https?):/([^/])`)
)

// ResolveDocumentURI turns a user-supplied target into an absolute http(s)
// document URI. An empty target resolves to DefaultBaseURI. Host-only targets
// such as "foo.com/bar" get an "http://" scheme. Query strings are kept
// verbatim and no percent-decoding is performed. A scheme other than http
// or https returns EINVALID.
func ResolveDocumentURI(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURI, nil
	}

	// Proxies and path cleaning collapse "http://x" into "http:/x".
	raw = collapsedPattern.ReplaceAllString(raw, "$1://$2")

	if m := schemePattern.FindStringSubmatch(raw); m != nil && !isPort(m[2]) {
		switch strings.ToLower(m[1]) {
		case "http", "https":
		default:
			return "", Errorf(EINVALID, "unsupported URI scheme %q", m[1])
		}
	} else {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URI %q: %v", raw, err)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URI %q has no host", raw)
	}
	return raw, nil
}

// isPort reports whether rest, the text after the first colon, starts with a
// port number, in which case the colon separates host and port rather than
// a scheme.
func isPort(rest string) bool {
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	if end == 0 {
		return false
	}
	for _, r := range rest[:end] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveReference resolves ref against base. It reports false for an empty
// ref, one that does not parse, or a script or data link that names no
// resource. Fragments are kept since they often identify the subject.
func ResolveReference(base IRI, ref string) (IRI, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") {
		return "", false
	}

	r, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	b, err := url.Parse(string(base))
	if err != nil {
		return "", false
	}
	return IRI(b.ResolveReference(r).String()), true
}
