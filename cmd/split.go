package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mwantia/photofs/data"
)

// Split tokenizes a command line. Single and double quotes group words and a
// backslash escapes the next character outside single quotes.
func Split(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inToken := false
	quoteChar := rune(0)
	escaped := false

	for _, ch := range line {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false

		case ch == '\\' && quoteChar != '\'':
			escaped = true
			inToken = true

		case quoteChar != 0:
			if ch == quoteChar {
				quoteChar = 0
			} else {
				current.WriteRune(ch)
			}

		case ch == '"' || ch == '\'':
			quoteChar = ch
			inToken = true

		case unicode.IsSpace(ch):
			if inToken {
				args = append(args, current.String())
				current.Reset()
				inToken = false
			}

		default:
			current.WriteRune(ch)
			inToken = true
		}
	}

	if quoteChar != 0 {
		return nil, fmt.Errorf("%w: unterminated quote", data.ErrInvalid)
	}
	if escaped {
		return nil, fmt.Errorf("%w: trailing backslash", data.ErrInvalid)
	}
	if inToken {
		args = append(args, current.String())
	}

	return args, nil
}
