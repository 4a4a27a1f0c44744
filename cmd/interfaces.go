package cmd

import (
	"context"
	"io"

	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/handle"
)

// API is the part of a folder view that commands operate on.
// It is satisfied by *photofs.View.
type API interface {
	// State returns the committed state of the view.
	State() photofs.State

	// Navigate makes path the target of the view and lists it.
	Navigate(ctx context.Context, path string) (photofs.State, bool, error)

	// Refresh lists the current directory again.
	Refresh(ctx context.Context) (photofs.State, error)

	// CreateDirectory creates a child directory of the current directory.
	CreateDirectory(ctx context.Context, name string) (*handle.Directory, error)

	// DeleteFile removes a file of the current directory.
	DeleteFile(ctx context.Context, name string) error

	// Capture stores content as the next sequential asset of the current directory.
	Capture(ctx context.Context, sourceName string, content []byte) (*handle.File, error)

	// Link returns the path of a child directory of the current target.
	Link(childName string) string

	// ImageURL returns the display URL of file.
	ImageURL(ctx context.Context, file *handle.File) (string, error)
}

var _ API = (*photofs.View)(nil)

// Command represents an executable command within a folder view.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "capture [-n name] <file>")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
