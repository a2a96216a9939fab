// Package fs provides file-based document sources and batch output storage.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/triplify"
)

// URIToPath converts a document URI to a relative, slash-separated file
// path with the given extension. The host becomes the top directory.
// A query string is folded into a short hash so distinct queries map to
// distinct files.
//
// Example: https://example.com/docs/api?v=2 → example.com/docs/api-1f3a9c2e.nt
func URIToPath(rawURI, ext string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", triplify.Errorf(triplify.EINVALID, "invalid URI %q: %v", rawURI, err)
	}

	host := strings.NewReplacer(":", "_").Replace(strings.ToLower(u.Host))
	if host == "" {
		host = "_"
	}

	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index"
	}
	// Cleaning a rooted path removes any "..".
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	if u.RawQuery != "" {
		p += fmt.Sprintf("-%08x", uint32(xxhash.Sum64String(u.RawQuery)))
	}
	return host + "/" + p + "." + ext, nil
}
