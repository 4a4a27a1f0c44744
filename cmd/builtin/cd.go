package builtin

import (
	"context"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type CdCommand struct {
}

func (cd *CdCommand) Name() string {
	return "cd"
}

func (cd *CdCommand) Description() string {
	return "Navigate to a folder path, relative or absolute"
}

func (cd *CdCommand) Usage() string {
	return "cd [path]"
}

func (cd *CdCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	target := resolvePath(api.State().Segments, args.Arg(0, "/"))

	state, committed, err := api.Navigate(ctx, target)
	if err != nil {
		return 1, err
	}
	if committed && !state.Found() {
		return 1, notFound(state)
	}
	return 0, nil
}

func (cd *CdCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
