// Package capture runs the receipt photo pipeline: acquire a frame from a
// file or camera, shrink it if it is heavy, hold it for review, then push it
// to the API once the captain confirms.
package capture

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// Frame is one acquired image on its way through the pipeline.
type Frame struct {
	Data []byte
	Name string
	MIME string
}

// Source produces a frame. Implementations are the file picker and the camera.
type Source interface {
	Acquire(ctx context.Context) (*Frame, error)
}

// FileSource reads a frame from a file on disk.
type FileSource struct {
	Path string
}

func (f *FileSource) Acquire(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	name := filepath.Base(f.Path)
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &Frame{Data: data, Name: name, MIME: mimeType}, nil
}
