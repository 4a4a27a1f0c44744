package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type MkdirCommand struct {
}

func (mkdir *MkdirCommand) Name() string {
	return "mkdir"
}

func (mkdir *MkdirCommand) Description() string {
	return "Create sub-folders in the current folder"
}

func (mkdir *MkdirCommand) Usage() string {
	return "mkdir <name>..."
}

func (mkdir *MkdirCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, mkdir.Usage()); err != nil {
		return 2, err
	}

	for _, name := range args.Args {
		dir, err := api.CreateDirectory(ctx, name)
		if err != nil {
			return 1, fmt.Errorf("mkdir '%s': %w", name, err)
		}
		fmt.Fprintln(writer, api.Link(dir.Name()))
	}
	return 0, nil
}

func (mkdir *MkdirCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
