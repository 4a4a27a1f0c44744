package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/mwantia/photofs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"ls", []string{"ls"}},
		{"  mkdir  a   b ", []string{"mkdir", "a", "b"}},
		{`mkdir "Summer Trip"`, []string{"mkdir", "Summer Trip"}},
		{`mkdir 'it"s'`, []string{"mkdir", `it"s`}},
		{`mkdir Summer\ Trip`, []string{"mkdir", "Summer Trip"}},
		{`cd ""`, []string{"cd", ""}},
		{"a\tb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(tst *testing.T) {
			got, err := Split(tt.line)
			require.NoError(tst, err)
			assert.Equal(tst, tt.want, got)
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	_, err := Split(`mkdir "open`)
	assert.ErrorIs(t, err, data.ErrInvalid)

	_, err = Split(`mkdir trailing\`)
	assert.ErrorIs(t, err, data.ErrInvalid)
}

func testFlags() *CommandFlagSet {
	return NewFlagSet(
		&CommandFlag{Name: "long", Short: "l", Type: "bool"},
		&CommandFlag{Name: "name", Short: "n", Type: "string", Default: "photo"},
		&CommandFlag{Name: "count", Short: "c", Type: "int"},
		&CommandFlag{Name: "tag", Short: "t", Type: "string", Multiple: true},
	)
}

func TestParser_Parse(t *testing.T) {
	args, err := NewParser(testFlags()).Parse([]string{"-l", "--name=trip", "-c", "3", "a", "-t", "x", "--tag", "y", "--", "-b"})
	require.NoError(t, err)

	assert.True(t, args.Bool("long"))
	assert.Equal(t, "trip", args.String("name"))
	assert.Equal(t, int64(3), args.Int("count"))
	assert.Equal(t, []string{"x", "y"}, args.Strings("tag"))
	assert.Equal(t, []string{"a", "-b"}, args.Args)
	assert.Equal(t, "a", args.Arg(0, ""))
	assert.Equal(t, "fallback", args.Arg(5, "fallback"))
}

func TestParser_Defaults(t *testing.T) {
	args, err := NewParser(testFlags()).Parse(nil)
	require.NoError(t, err)

	assert.False(t, args.Bool("long"))
	assert.Equal(t, "photo", args.String("name"))
	assert.Empty(t, args.Args)
}

func TestParser_ShortCombined(t *testing.T) {
	args, err := NewParser(testFlags()).Parse([]string{"-lc5"})
	require.NoError(t, err)

	assert.True(t, args.Bool("long"))
	assert.Equal(t, int64(5), args.Int("count"))
}

func TestParser_Errors(t *testing.T) {
	tests := map[string][]string{
		"unknown long":  {"--nope"},
		"unknown short": {"-x"},
		"missing value": {"--name"},
		"bad int":       {"--count", "many"},
	}

	for name, raw := range tests {
		t.Run(name, func(tst *testing.T) {
			_, err := NewParser(testFlags()).Parse(raw)
			assert.ErrorIs(tst, err, data.ErrInvalid)
		})
	}

	_, err := NewParser(NewFlagSet(&CommandFlag{Name: "must", Type: "string", Required: true})).Parse(nil)
	assert.ErrorIs(t, err, data.ErrInvalid)
}

type echoCommand struct{}

func (e *echoCommand) Name() string        { return "echo" }
func (e *echoCommand) Description() string { return "Echo arguments" }
func (e *echoCommand) Usage() string       { return "echo [-n] <text>..." }
func (e *echoCommand) GetFlags() *CommandFlagSet {
	return NewFlagSet(&CommandFlag{Name: "no-newline", Short: "n", Type: "bool"})
}

func (e *echoCommand) Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error) {
	for i, arg := range args.Args {
		if i > 0 {
			io.WriteString(writer, " ")
		}
		io.WriteString(writer, arg)
	}
	if !args.Bool("no-newline") {
		io.WriteString(writer, "\n")
	}
	return 0, nil
}

func TestCenter(t *testing.T) {
	center := NewCenter()
	require.NoError(t, center.Register(&echoCommand{}))
	assert.ErrorIs(t, center.Register(&echoCommand{}), data.ErrExist)

	var out bytes.Buffer
	code, err := center.ExecuteLine(t.Context(), nil, &out, `echo -n "hello world" again`)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello world again", out.String())

	code, err = center.Execute(t.Context(), nil, &out, "missing")
	assert.ErrorIs(t, err, data.ErrNotFound)
	assert.Equal(t, 127, code)

	code, err = center.Execute(t.Context(), nil, &out, "echo", "--bogus")
	assert.ErrorIs(t, err, data.ErrInvalid)
	assert.Equal(t, 2, code)

	code, err = center.Execute(t.Context(), nil, &out)
	assert.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Len(t, center.List(), 1)
	assert.True(t, center.Unregister("echo"))
	assert.False(t, center.Unregister("echo"))
	assert.Empty(t, center.List())
}
