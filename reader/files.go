package reader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/speakeasy-api/oasgraph/workspace"
)

// FileSystem opens files from the host file system by their host path, relative or absolute.
type FileSystem struct{}

var _ fs.FS = (*FileSystem)(nil)

func (f *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(filepath.Clean(name)) //nolint:gosec
}

// ReadFiles opens every path in fsys and reads the documents with ReadAll. Each document is
// registered under its cleaned path with forward slashes. A nil fsys reads from the host file system.
func ReadFiles(ctx context.Context, fsys fs.FS, paths []string, opts ...Option[ReadOptions]) (*workspace.Workspace, []*Result, error) {
	if fsys == nil {
		fsys = &FileSystem{}
	}

	sources := make([]Source, 0, len(paths))
	defer func() {
		for _, source := range sources {
			if c, ok := source.Reader.(io.Closer); ok {
				_ = c.Close()
			}
		}
	}()

	for _, path := range paths {
		f, err := fsys.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		sources = append(sources, Source{Location: filepath.ToSlash(filepath.Clean(path)), Reader: f})
	}

	return ReadAll(ctx, sources, opts...)
}
