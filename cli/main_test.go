package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/cmd/builtin"
	"github.com/mwantia/photofs/config"
	"github.com/mwantia/photofs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-b", "sqlite", "--root", "photos.db", "--read-only", "-e", "ls", "-e", "pwd"})
	require.NoError(t, err)

	cfg := config.Default()
	opts.apply(cfg)

	assert.Equal(t, "sqlite", cfg.Backend.Type)
	assert.Equal(t, "photos.db", cfg.Backend.Path)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"ls", "pwd"}, opts.exec)
	assert.Equal(t, "/", opts.path)
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags([]string{"--nope"})
	assert.Error(t, err)
}

func newAPI(tst *testing.T) (*cmd.Center, cmd.API) {
	tst.Helper()

	session, err := photofs.Open(tst.Context(), ephemeral.NewEphemeralBackend(), photofs.WithLogger(log.Discard()))
	require.NoError(tst, err)

	view := session.NewView()
	tst.Cleanup(func() {
		_ = view.Close()
		_ = session.Close(context.Background())
	})

	_, _, err = view.Navigate(tst.Context(), "/")
	require.NoError(tst, err)

	center := cmd.NewCenter()
	require.NoError(tst, builtin.InitBuiltin(center))
	return center, view
}

func TestExecute(t *testing.T) {
	center, api := newAPI(t)

	var stdout, stderr bytes.Buffer
	code := execute(t.Context(), center, api, []string{"mkdir Album", "cd album", "pwd"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "/album\n/album\n", stdout.String())
	assert.Empty(t, stderr.String())

	code = execute(t.Context(), center, api, []string{"cd /missing", "pwd"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "/missing")
}

func TestPrompt(t *testing.T) {
	center, api := newAPI(t)

	stdin := strings.NewReader("mkdir Album\nbogus\ncd album\nexit\npwd\n")
	var stdout, stderr bytes.Buffer

	code := prompt(t.Context(), center, api, stdin, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "photofs:/> ")
	assert.Contains(t, stdout.String(), "photofs:/album> ")
	assert.Contains(t, stderr.String(), "bogus")
	assert.Equal(t, "/album", api.State().Path)
}
