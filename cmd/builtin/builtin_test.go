package builtin_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/cmd/builtin"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type shell struct {
	tst    *testing.T
	center *cmd.Center
	view   *photofs.View
}

func newShell(tst *testing.T, opts ...photofs.SessionOption) *shell {
	tst.Helper()

	opts = append([]photofs.SessionOption{photofs.WithLogger(log.Discard())}, opts...)
	session, err := photofs.Open(tst.Context(), ephemeral.NewEphemeralBackend(), opts...)
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

	return &shell{tst: tst, center: center, view: view}
}

func (s *shell) run(line string) (string, int, error) {
	var out bytes.Buffer
	code, err := s.center.ExecuteLine(s.tst.Context(), s.view, &out, line)
	return out.String(), code, err
}

func (s *shell) must(line string) string {
	s.tst.Helper()

	out, code, err := s.run(line)
	require.NoError(s.tst, err, line)
	require.Equal(s.tst, 0, code, line)
	return out
}

func writeLocal(tst *testing.T, name string) string {
	tst.Helper()

	local := filepath.Join(tst.TempDir(), name)
	require.NoError(tst, os.WriteFile(local, pngContent, 0o644))
	return local
}

func TestBuiltin_BrowseCreateCapture(t *testing.T) {
	sh := newShell(t)

	assert.Equal(t, "/summer-trip\n", sh.must(`mkdir "Summer Trip"`))
	assert.Equal(t, "Summer Trip/\n", sh.must("ls"))

	sh.must("cd summer-trip")
	assert.Equal(t, "/summer-trip\n", sh.must("pwd"))

	local := writeLocal(t, "shot.png")
	assert.Equal(t, "summer-trip-1.png\n", sh.must(fmt.Sprintf("capture %q", local)))
	assert.Equal(t, "summer-trip-2.jpeg\n", sh.must(fmt.Sprintf("capture -n upload.jpeg %q", local)))

	listing := sh.must("ls -l")
	assert.Contains(t, listing, "summer-trip-1.png")
	assert.Contains(t, listing, "image/png")

	url := sh.must("url summer-trip-1.png")
	assert.True(t, strings.HasPrefix(url, "blob:photofs/"), url)

	sh.must("rm summer-trip-1.png")
	assert.Equal(t, "summer-trip-2.jpeg\n", sh.must("ls"))

	sh.must("cd ..")
	assert.Equal(t, "/\n", sh.must("pwd"))

	sh.must("cd '/Summer Trip'")
	assert.Equal(t, "/summer-trip\n", sh.must("pwd"))

	sh.must("cd")
	assert.Equal(t, "/\n", sh.must("pwd"))
}

func TestBuiltin_Link(t *testing.T) {
	sh := newShell(t)

	sh.must("mkdir Album")
	sh.must("cd album")
	assert.Equal(t, "/album/new-year\n", sh.must(`link "New Year"`))
}

func TestBuiltin_Errors(t *testing.T) {
	sh := newShell(t)

	_, code, err := sh.run("cd nowhere")
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, data.ErrNotFound)
	assert.Equal(t, "/nowhere\n", sh.must("pwd"))

	_, code, err = sh.run("ls")
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, data.ErrNotFound)

	sh.must("cd /")

	_, code, err = sh.run("mkdir")
	assert.Equal(t, 2, code)
	assert.ErrorIs(t, err, data.ErrInvalid)

	_, _, err = sh.run("mkdir ..")
	assert.ErrorIs(t, err, data.ErrInvalidName)

	_, _, err = sh.run("rm missing.png")
	assert.ErrorIs(t, err, data.ErrNotExist)

	_, _, err = sh.run("url missing.png")
	assert.ErrorIs(t, err, data.ErrNotExist)

	_, code, err = sh.run("frobnicate")
	assert.Equal(t, 127, code)
	assert.ErrorIs(t, err, data.ErrNotFound)

	_, _, err = sh.run("exit")
	assert.ErrorIs(t, err, cmd.ErrExit)
}

func TestBuiltin_ReadOnly(t *testing.T) {
	sh := newShell(t, photofs.AsReadOnly())

	_, _, err := sh.run("mkdir Album")
	assert.ErrorIs(t, err, data.ErrPermission)

	_, _, err = sh.run(fmt.Sprintf("capture %q", writeLocal(t, "shot.png")))
	assert.ErrorIs(t, err, data.ErrPermission)
}

func TestBuiltin_Help(t *testing.T) {
	sh := newShell(t)

	out := sh.must("help")
	for _, name := range []string{"capture", "cd", "exit", "help", "link", "ls", "mkdir", "pwd", "rm", "url"} {
		assert.Contains(t, out, name)
	}

	assert.Contains(t, sh.must("help capture"), "--name")
}
