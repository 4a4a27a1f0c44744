package handle

import (
	"context"
	"errors"
	"io"

	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/data"
)

// chunkSize is the largest single write issued to the backend.
const chunkSize = 1 << 20

// Entry is either a *Directory or a *File.
type Entry interface {
	Name() string
	IsDir() bool
}

// Directory is an opaque reference to a directory node.
type Directory struct {
	root *Root
	key  string
	name string
}

// Name returns the display name of the directory; the root has an empty name.
func (d *Directory) Name() string {
	return d.name
}

func (d *Directory) IsDir() bool {
	return true
}

// Capabilities returns the capabilities of the backend holding this directory.
func (d *Directory) Capabilities() *backend.BackendCapabilities {
	return d.root.Capabilities()
}

// Entries enumerates every immediate child in enumeration order.
func (d *Directory) Entries(ctx context.Context) ([]Entry, error) {
	if err := d.check(); err != nil {
		return nil, err
	}

	stats, err := d.root.storage.ListObjects(ctx, d.key)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, d.entry(stat))
	}

	return entries, nil
}

// Directory returns the child directory with the exact given name.
func (d *Directory) Directory(ctx context.Context, name string) (*Directory, error) {
	stat, err := d.head(ctx, name)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, data.ErrNotDirectory
	}

	return d.directory(stat), nil
}

// File returns the child file with the exact given name.
func (d *Directory) File(ctx context.Context, name string) (*File, error) {
	stat, err := d.head(ctx, name)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, data.ErrIsDirectory
	}

	return d.file(stat), nil
}

// CreateDirectory creates a child directory, or returns it when one with
// that exact name already exists.
func (d *Directory) CreateDirectory(ctx context.Context, name string) (*Directory, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := d.check(); err != nil {
		return nil, err
	}

	stat, err := d.root.storage.CreateObject(ctx, data.JoinKey(d.key, name), data.ModeDir)
	if errors.Is(err, data.ErrExist) {
		return d.Directory(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	return d.directory(stat), nil
}

// CreateFile creates a new child file with the content of r. It fails with
// data.ErrExist when the name is taken; a partially written file is removed.
func (d *Directory) CreateFile(ctx context.Context, name string, r io.Reader) (*File, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := d.check(); err != nil {
		return nil, err
	}

	key := data.JoinKey(d.key, name)
	if _, err := d.root.storage.CreateObject(ctx, key, 0); err != nil {
		return nil, err
	}

	if err := d.write(ctx, key, r); err != nil {
		errs := data.Errors{}
		errs.Add(err)
		errs.Add(d.root.storage.DeleteObject(ctx, key, false))
		return nil, errs.Errors()
	}

	stat, err := d.root.storage.HeadObject(ctx, key)
	if err != nil {
		return nil, err
	}

	return d.file(stat), nil
}

// RemoveEntry removes a child. Directories are only removed when recursive is set.
func (d *Directory) RemoveEntry(ctx context.Context, name string, recursive bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := d.check(); err != nil {
		return err
	}

	return d.root.storage.DeleteObject(ctx, data.JoinKey(d.key, name), recursive)
}

func (d *Directory) write(ctx context.Context, key string, r io.Reader) error {
	limit := d.Capabilities()
	buf := make([]byte, chunkSize)

	var offset int64
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if !limit.Accepts(offset + int64(n)) {
				return data.TooLarge(offset+int64(n), limit.MaxObjectSize)
			}
			if _, err := d.root.storage.WriteObject(ctx, key, offset, buf[:n]); err != nil {
				return err
			}
			offset += int64(n)
		}

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (d *Directory) head(ctx context.Context, name string) (*data.FileStat, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := d.check(); err != nil {
		return nil, err
	}

	return d.root.storage.HeadObject(ctx, data.JoinKey(d.key, name))
}

func (d *Directory) check() error {
	if !d.root.Valid() {
		return data.HandleInvalid(d.name)
	}
	return nil
}

func (d *Directory) entry(stat *data.FileStat) Entry {
	if stat.IsDir() {
		return d.directory(stat)
	}
	return d.file(stat)
}

func (d *Directory) directory(stat *data.FileStat) *Directory {
	return &Directory{
		root: d.root,
		key:  stat.Key,
		name: stat.Name(),
	}
}

func (d *Directory) file(stat *data.FileStat) *File {
	return &File{
		root: d.root,
		stat: stat.Clone(),
	}
}
