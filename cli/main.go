package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/backend/factory"
	"github.com/mwantia/photofs/cli/tui"
	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/cmd/builtin"
	"github.com/mwantia/photofs/config"
	"github.com/mwantia/photofs/log"
	"github.com/spf13/pflag"
)

type options struct {
	configPath string
	backend    string
	root       string
	dsn        string
	logLevel   string
	readOnly   bool
	plain      bool
	path       string
	exec       []string
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}

	flags := pflag.NewFlagSet("photofs", pflag.ContinueOnError)
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv("PHOTOFS_CONFIG"), "path to a TOML config file")
	flags.StringVarP(&opts.backend, "backend", "b", "", "backend type: direct, ephemeral, sqlite, postgres, consul or s3")
	flags.StringVar(&opts.root, "root", "", "root directory (direct) or database file (sqlite)")
	flags.StringVar(&opts.dsn, "dsn", "", "postgres connection string")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.readOnly, "read-only", false, "reject every change")
	flags.BoolVar(&opts.plain, "plain", false, "use a line prompt instead of the browser")
	flags.StringVarP(&opts.path, "path", "p", "/", "folder path to open")
	flags.StringArrayVarP(&opts.exec, "exec", "e", nil, "run a command line and exit (repeatable)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// apply overrides config values with the flags that were given.
func (o *options) apply(cfg *config.Config) {
	if o.backend != "" {
		cfg.Backend.Type = o.backend
	}
	if o.root != "" {
		cfg.Backend.Path = o.root
	}
	if o.dsn != "" {
		cfg.Backend.DSN = o.dsn
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.readOnly {
		cfg.ReadOnly = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger := newLogger(cfg, opts.plain)
	fail := func(format string, args ...any) int {
		logger.Error(format, args...)
		if !opts.plain {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
		return 1
	}

	storage, err := factory.New(ctx, cfg.Backend)
	if err != nil {
		return fail("Failed to create backend '%s': %v", cfg.Backend.Type, err)
	}

	sessionOpts := []photofs.SessionOption{
		photofs.WithLogger(logger),
		photofs.WithBlobPrefix(cfg.BlobPrefix),
	}
	if cfg.ReadOnly {
		sessionOpts = append(sessionOpts, photofs.AsReadOnly())
	}

	session, err := photofs.Open(ctx, storage, sessionOpts...)
	if err != nil {
		return fail("Failed to open session: %v", err)
	}
	defer func() {
		if err := session.Close(context.Background()); err != nil {
			logger.Error("Failed to close session: %v", err)
		}
	}()

	view := session.NewView()
	defer view.Close()

	if _, _, err := view.Navigate(ctx, opts.path); err != nil {
		return fail("Failed to open '%s': %v", opts.path, err)
	}

	center := cmd.NewCenter()
	if err := builtin.InitBuiltin(center); err != nil {
		return fail("Failed to register commands: %v", err)
	}

	switch {
	case len(opts.exec) > 0:
		return execute(ctx, center, view, opts.exec, os.Stdout, os.Stderr)
	case opts.plain:
		return prompt(ctx, center, view, os.Stdin, os.Stdout, os.Stderr)
	}

	model := tui.NewModel(ctx, view, center, logger.Named("tui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fail("Browser failed: %v", err)
	}
	return 0
}

// newLogger writes to the terminal only for the line prompt, so the browser
// screen and the output of executed commands stay clean.
func newLogger(cfg *config.Config, terminal bool) *log.Logger {
	level, _ := log.Parse(cfg.Log.Level)

	logger := log.NewLogger("photofs", level, cfg.Log.File, cfg.Log.NoTerminal || !terminal)
	logger.JSON = cfg.Log.JSON
	return logger
}

// execute runs each line in order and stops at the first failure.
func execute(ctx context.Context, center *cmd.Center, api cmd.API, lines []string, stdout, stderr io.Writer) int {
	for _, line := range lines {
		code, err := center.ExecuteLine(ctx, api, stdout, line)
		if errors.Is(err, cmd.ErrExit) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
		}
		if code != 0 || err != nil {
			return max(code, 1)
		}
	}
	return 0
}

// prompt reads command lines until exit, end of input or cancellation.
func prompt(ctx context.Context, center *cmd.Center, api cmd.API, stdin io.Reader, stdout, stderr io.Writer) int {
	scanner := bufio.NewScanner(stdin)

	for {
		fmt.Fprintf(stdout, "photofs:%s> ", api.State().Path)
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			break
		}
		if ctx.Err() != nil {
			break
		}

		_, err := center.ExecuteLine(ctx, api, stdout, scanner.Text())
		if errors.Is(err, cmd.ErrExit) {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}
