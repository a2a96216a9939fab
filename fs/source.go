package fs

import (
	"errors"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/triplify"
)

// extensionTypes covers the inputs extractors are registered for, so the
// result does not depend on the host's mime tables.
var extensionTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".xhtml": "application/xhtml+xml",
	".nt":    "application/n-triples",
	".nq":    "application/n-quads",
	".txt":   "text/plain",
}

// NewFileSource reads a local file into a document source. The content type
// comes from the file extension, or is empty when the extension is unknown.
// The document URI is the file:// URI of the absolute path.
func NewFileSource(path string) (*triplify.MemorySource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, triplify.Errorf(triplify.EACQUISITION, "resolving %s: %v", path, err)
	}

	content, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, triplify.Errorf(triplify.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return nil, triplify.Errorf(triplify.EACQUISITION, "reading %s: %v", path, err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return triplify.NewBytesSource(content, u.String(), ContentTypeOf(abs)), nil
}

// ContentTypeOf guesses a media type from the file name.
func ContentTypeOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}
