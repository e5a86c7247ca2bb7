package source

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// FileSource lê o razão de um arquivo local
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string {
	return f.path
}

func (f *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", errors.Wrapf(err, "erro ao ler o arquivo %s", f.path)
	}

	return string(data), nil
}
