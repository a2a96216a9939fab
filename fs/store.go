package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/triplify"
)

// Ensure FileStore implements triplify.OutputStore at compile time.
var _ triplify.OutputStore = (*FileStore)(nil)

// FileStore implements triplify.OutputStore with atomic update semantics.
// Output is saved to a temporary directory, then moved into place on Commit.
type FileStore struct {
	baseDir string
	name    string
	ext     string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name and
// ext the extension of every saved file. Files are saved to
// baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name, ext string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		ext:     ext,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes content to the file derived from uri under the temp directory.
func (s *FileStore) Save(ctx context.Context, uri string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URIToPath(uri, s.ext)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(fullPath, content, 0644)
}

// Commit replaces the final directory with the temp directory. Committing
// with nothing saved leaves an empty final directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temp directory and leaves any earlier output in place.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
