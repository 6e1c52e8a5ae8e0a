package monday

import (
	"context"
	"fmt"
	"os"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/rs/zerolog"
)

const FileSourceName = "file"

// FileSource reads a board export from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("export path is required")
	}
	return &FileSource{path: path}, nil
}

func (s *FileSource) Name() string {
	return FileSourceName
}

func (s *FileSource) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &domain.FetchError{Source: FileSourceName, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Str("path", s.path).Msg("failed to close export file")
		}
	}()

	items, err := DecodeItems(f)
	if err != nil {
		return nil, &domain.FetchError{Source: FileSourceName, Err: err}
	}
	return items, nil
}
