package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/photofs/cmd"
)

type UrlCommand struct {
}

func (u *UrlCommand) Name() string {
	return "url"
}

func (u *UrlCommand) Description() string {
	return "Print the display URL of an image"
}

func (u *UrlCommand) Usage() string {
	return "url <file>"
}

func (u *UrlCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, u.Usage()); err != nil {
		return 2, err
	}

	file, err := findFile(api.State(), args.Args[0])
	if err != nil {
		return 1, err
	}

	url, err := api.ImageURL(ctx, file)
	if err != nil {
		return 1, err
	}

	fmt.Fprintln(writer, url)
	return 0, nil
}

func (u *UrlCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
