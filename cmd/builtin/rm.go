package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type RmCommand struct {
}

func (rm *RmCommand) Name() string {
	return "rm"
}

func (rm *RmCommand) Description() string {
	return "Delete images of the current folder"
}

func (rm *RmCommand) Usage() string {
	return "rm <file>..."
}

func (rm *RmCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, rm.Usage()); err != nil {
		return 2, err
	}

	for _, name := range args.Args {
		if err := api.DeleteFile(ctx, name); err != nil {
			return 1, fmt.Errorf("rm '%s': %w", name, err)
		}
	}
	return 0, nil
}

func (rm *RmCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
