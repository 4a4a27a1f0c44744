package builtin

import (
	"context"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type ExitCommand struct {
}

func (e *ExitCommand) Name() string {
	return "exit"
}

func (e *ExitCommand) Description() string {
	return "Close the view and end the session"
}

func (e *ExitCommand) Usage() string {
	return "exit"
}

func (e *ExitCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	return 0, cmd.ErrExit
}

func (e *ExitCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
