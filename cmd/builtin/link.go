package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type LinkCommand struct {
}

func (l *LinkCommand) Name() string {
	return "link"
}

func (l *LinkCommand) Description() string {
	return "Print the path of a sub-folder of the current folder"
}

func (l *LinkCommand) Usage() string {
	return "link <folder>"
}

func (l *LinkCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, l.Usage()); err != nil {
		return 2, err
	}

	_, err := fmt.Fprintln(writer, api.Link(args.Args[0]))
	return 0, err
}

func (l *LinkCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
