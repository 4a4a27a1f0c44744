package handle

import (
	"context"
	"io"
	"time"

	"github.com/mwantia/photofs/data"
)

// File is a snapshot reference to a leaf resource. Its attributes do not
// follow later mutations; enumerate the parent again for a fresh one.
type File struct {
	root *Root
	stat *data.FileStat
}

func (f *File) Name() string {
	return f.stat.Name()
}

func (f *File) IsDir() bool {
	return false
}

// MediaType returns the content type without parameters.
func (f *File) MediaType() string {
	return data.BaseMediaType(f.stat.ContentType)
}

func (f *File) Size() int64 {
	return f.stat.Size
}

func (f *File) ModifyTime() time.Time {
	return f.stat.ModifyTime
}

// Open returns a reader over the file content. Nothing is read until the first Read.
func (f *File) Open(ctx context.Context) (*Reader, error) {
	if !f.root.Valid() {
		return nil, data.HandleInvalid(f.Name())
	}

	return &Reader{
		ctx:  ctx,
		file: f,
	}, nil
}

// ReadAll reads the complete content of the file.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	reader, err := f.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
