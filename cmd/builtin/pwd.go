package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type PwdCommand struct {
}

func (pwd *PwdCommand) Name() string {
	return "pwd"
}

func (pwd *PwdCommand) Description() string {
	return "Print the current folder path"
}

func (pwd *PwdCommand) Usage() string {
	return "pwd"
}

func (pwd *PwdCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	_, err := fmt.Fprintln(writer, api.State().Path)
	return 0, err
}

func (pwd *PwdCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
