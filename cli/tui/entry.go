package tui

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/slug"
)

// Entry is a sub-folder or image row of the browser.
type Entry struct {
	Name      string
	Link      string
	IsDir     bool
	Size      int64
	ModTime   time.Time
	MediaType string

	file *handle.File
}

// entriesOf lists sub-folders first, then images, both in enumeration order.
// Links are relative to the segments of state, not to the live view.
func entriesOf(state photofs.State) []*Entry {
	entries := make([]*Entry, 0, len(state.Listing.Directories)+len(state.Listing.Files))

	for _, dir := range state.Listing.Directories {
		entries = append(entries, &Entry{
			Name:  dir.Name(),
			Link:  slug.Link(state.Segments, dir.Name()),
			IsDir: true,
		})
	}

	for _, file := range state.Listing.Files {
		entries = append(entries, &Entry{
			Name:      file.Name(),
			Size:      file.Size(),
			ModTime:   file.ModifyTime(),
			MediaType: file.MediaType(),
			file:      file,
		})
	}

	return entries
}

// DisplayName returns the name with appropriate indicator
func (e *Entry) DisplayName() string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// DisplaySize returns human-readable size
func (e *Entry) DisplaySize() string {
	if e.IsDir {
		return "<DIR>"
	}
	return humanize.Bytes(uint64(e.Size))
}

// DisplayModTime returns formatted modification time
func (e *Entry) DisplayModTime() string {
	if e.ModTime.IsZero() {
		return "-"
	}
	return e.ModTime.Format("2006-01-02 15:04:05") + " (" + humanize.Time(e.ModTime) + ")"
}

func (e *Entry) Icon() string {
	if e.IsDir {
		return "▸"
	}
	return "▪"
}
