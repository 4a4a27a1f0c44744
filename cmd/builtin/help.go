package builtin

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/data"
)

type HelpCommand struct {
	center *cmd.Center
}

func (h *HelpCommand) Name() string {
	return "help"
}

func (h *HelpCommand) Description() string {
	return "Show available commands or the flags of one command"
}

func (h *HelpCommand) Usage() string {
	return "help [command]"
}

func (h *HelpCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if len(args.Args) == 0 {
		for _, command := range h.center.List() {
			fmt.Fprintf(tw, "%s\t%s\n", command.Usage(), command.Description())
		}
		return 0, tw.Flush()
	}

	command, ok := h.center.Get(args.Args[0])
	if !ok {
		return 1, fmt.Errorf("%w: unknown command '%s'", data.ErrNotFound, args.Args[0])
	}

	fmt.Fprintf(tw, "%s\n  %s\n", command.Usage(), command.Description())
	if flags := command.GetFlags(); flags != nil {
		names := make([]string, 0, len(flags.Flags))
		for name := range flags.Flags {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			flag := flags.Flags[name]
			fmt.Fprintf(tw, "  -%s, --%s\t%s\n", flag.Short, flag.Name, flag.Description)
		}
	}
	return 0, tw.Flush()
}

func (h *HelpCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
