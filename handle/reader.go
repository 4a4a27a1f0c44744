package handle

import (
	"context"
	"io"
	"sync"

	"github.com/mwantia/photofs/data"
)

// Reader reads, seeks and closes the content of a File.
type Reader struct {
	file   *File
	offset int64
	closed bool

	mu  sync.Mutex
	ctx context.Context
}

// Read reads up to len(p) bytes from the file at the current offset.
// Advances the offset by the number of bytes read.
func (r *Reader) Read(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, data.ErrClosed
	}

	// Check context cancellation
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	if !r.file.root.Valid() {
		return 0, data.HandleInvalid(r.file.Name())
	}

	n, err = r.file.root.storage.ReadObject(r.ctx, r.file.stat.Key, r.offset, p)
	if n > 0 {
		r.offset += int64(n)
	}

	return n, err
}

// Seek sets the offset for the next Read operation and returns the new offset.
// It implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, data.ErrClosed
	}

	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = r.offset + offset
	case io.SeekEnd:
		stat, err := r.file.root.storage.HeadObject(r.ctx, r.file.stat.Key)
		if err != nil {
			return 0, err
		}
		newOffset = stat.Size + offset
	default:
		return 0, data.ErrInvalid
	}

	if newOffset < 0 {
		return 0, data.ErrInvalid
	}

	r.offset = newOffset
	return newOffset, nil
}

// Close marks the reader as closed.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return data.ErrClosed
	}

	r.closed = true
	return nil
}
