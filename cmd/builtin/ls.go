package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/mwantia/photofs/cmd"
)

type LsCommand struct {
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	return "List sub-folders and images of the current folder"
}

// Usage returns a usage string for help
func (ls *LsCommand) Usage() string {
	return "ls [-l]"
}

// Execute runs the command with parsed arguments
// Returns exit code (0 = success) and error message
func (ls *LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	state, err := api.Refresh(ctx)
	if err != nil {
		return 1, err
	}
	if !state.Found() {
		return 1, notFound(state)
	}

	long := args.Bool("long")
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	for _, dir := range state.Listing.Directories {
		if long {
			fmt.Fprintf(tw, "dir\t-\t-\t%s/\t%s\n", dir.Name(), api.Link(dir.Name()))
		} else {
			fmt.Fprintf(tw, "%s/\n", dir.Name())
		}
	}

	for _, file := range state.Listing.Files {
		if long {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
				file.MediaType(),
				humanize.Bytes(uint64(file.Size())),
				humanize.Time(file.ModifyTime()),
				file.Name())
		} else {
			fmt.Fprintf(tw, "%s\n", file.Name())
		}
	}

	return 0, tw.Flush()
}

// GetFlags returns the flag set for this command
func (ls *LsCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(&cmd.CommandFlag{
		Name:        "long",
		Short:       "l",
		Type:        "bool",
		Description: "Show media type, size and age",
	})
}
