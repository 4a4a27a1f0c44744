package builtin

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mwantia/photofs/cmd"
)

type CaptureCommand struct {
}

func (c *CaptureCommand) Name() string {
	return "capture"
}

func (c *CaptureCommand) Description() string {
	return "Store a local image as the next sequential photo of the current folder"
}

func (c *CaptureCommand) Usage() string {
	return "capture [-n source-name] <local-file>"
}

func (c *CaptureCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, c.Usage()); err != nil {
		return 2, err
	}

	local := args.Args[0]
	content, err := os.ReadFile(local)
	if err != nil {
		return 1, fmt.Errorf("capture: %w", err)
	}

	sourceName := args.String("name")
	if sourceName == "" {
		sourceName = filepath.Base(local)
	}

	file, err := api.Capture(ctx, sourceName, content)
	if err != nil {
		return 1, fmt.Errorf("capture '%s': %w", sourceName, err)
	}

	fmt.Fprintln(writer, file.Name())
	return 0, nil
}

func (c *CaptureCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(&cmd.CommandFlag{
		Name:        "name",
		Short:       "n",
		Type:        "string",
		Description: "Source name used to pick the extension",
	})
}
