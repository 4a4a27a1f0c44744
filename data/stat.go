package data

import (
	"path"
	"time"
)

// FileStat is the low-level description of a stored object as reported by a backend.
type FileStat struct {
	// Relative key within the backend, "" for the root
	Key string `json:"key"`

	// Unix-style mode and permissions
	Mode FileMode `json:"mode"`

	// Size in bytes (0 for directories)
	Size int64 `json:"size"`

	ModifyTime time.Time `json:"modify_time"`
	CreateTime time.Time `json:"create_time"`

	// Content MIME type
	ContentType string `json:"content_type"`
}

// Name returns the last element of the key.
func (fs *FileStat) Name() string {
	if fs.Key == "" {
		return ""
	}
	return path.Base(fs.Key)
}

// IsDir returns true if this object is a directory.
func (fs *FileStat) IsDir() bool {
	return fs.Mode.IsDir()
}

// Clone creates a copy of the stat.
func (fs *FileStat) Clone() *FileStat {
	clone := *fs
	return &clone
}
