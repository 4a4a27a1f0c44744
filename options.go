package photofs

import (
	"fmt"

	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/log"
)

type SessionOptions struct {
	Logger        *log.Logger
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	BlobPrefix    string
	ReadOnly      bool
}

type SessionOption func(*SessionOptions) error

func newDefaultSessionOptions() *SessionOptions {
	return &SessionOptions{
		LogLevel:   log.Info,
		BlobPrefix: "photofs",
	}
}

// WithLogger uses an existing logger instead of creating one from the log options.
func WithLogger(logger *log.Logger) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Logger = logger
		return nil
	}
}

func WithLogLevel(logLevel log.LogLevel) SessionOption {
	return func(opts *SessionOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() SessionOption {
	return func(opts *SessionOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) SessionOption {
	return func(opts *SessionOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithBlobPrefix sets the prefix of display URLs handed out by views.
func WithBlobPrefix(prefix string) SessionOption {
	return func(opts *SessionOptions) error {
		if prefix == "" {
			return fmt.Errorf("%w: blob prefix must not be empty", data.ErrInvalid)
		}
		opts.BlobPrefix = prefix
		return nil
	}
}

// AsReadOnly rejects every mutation made through views of the session.
func AsReadOnly() SessionOption {
	return func(opts *SessionOptions) error {
		opts.ReadOnly = true
		return nil
	}
}
