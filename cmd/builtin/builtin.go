package builtin

import (
	"fmt"
	"path"
	"strings"

	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/slug"
)

// InitBuiltin registers every builtin command with center.
func InitBuiltin(center *cmd.Center) error {
	commands := []cmd.Command{
		&LsCommand{},
		&CdCommand{},
		&PwdCommand{},
		&MkdirCommand{},
		&RmCommand{},
		&CaptureCommand{},
		&LinkCommand{},
		&UrlCommand{},
		&HelpCommand{center: center},
		&ExitCommand{},
	}

	for _, command := range commands {
		if err := center.Register(command); err != nil {
			return err
		}
	}
	return nil
}

// resolvePath turns a cd argument into a navigation path relative to current.
// Segments are slugified so display names can be used as well.
func resolvePath(current []string, target string) string {
	var segments []string
	if !strings.HasPrefix(target, "/") {
		segments = append(segments, current...)
	}

	for _, segment := range strings.Split(target, "/") {
		switch strings.TrimSpace(segment) {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, slug.Slugify(segment))
		}
	}

	return slug.Join(segments)
}

func findFile(state photofs.State, name string) (*handle.File, error) {
	for _, file := range state.Listing.Files {
		if file.Name() == name {
			return file, nil
		}
	}
	return nil, fmt.Errorf("%w: no image '%s' in '%s'", data.ErrNotExist, name, state.Path)
}

func requireArgs(args *cmd.CommandArgs, usage string) error {
	if len(args.Args) == 0 {
		return fmt.Errorf("%w: usage: %s", data.ErrInvalid, usage)
	}
	return nil
}

func notFound(state photofs.State) error {
	return data.NotFound(path.Clean(state.Path))
}
