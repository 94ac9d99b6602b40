package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/avfs/avfs/vfs/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfm/internal/dispatch"
	"sfm/internal/fileinfo"
	"sfm/internal/fileops"
	"sfm/internal/listing"
	"sfm/internal/navigation"
)

func newConsole(t *testing.T, input string) (*Console, *bytes.Buffer, *memfs.MemFS) {
	t.Helper()
	mfs := memfs.New()
	require.NoError(t, mfs.MkdirAll("/work/sub", 0o755))
	require.NoError(t, mfs.WriteFile("/work/a.txt", []byte("alpha"), 0o644))
	v := fileinfo.NewLocalFSFrom(mfs)
	nav := navigation.New(v, "/work", fileinfo.Parsed{Provider: "local"})
	d := dispatch.New(nav, fileops.New(v), listing.New(v, listing.Options{}), dispatch.Options{})

	var out bytes.Buffer
	c := New(nav, d, NewLinePrompter(strings.NewReader(input), &out), NewPrinter(&out, true))
	return c, &out, mfs
}

func TestRunListsAndExits(t *testing.T) {
	c, out, _ := newConsole(t, "1\n9\n")
	require.NoError(t, c.Run())

	text := out.String()
	assert.Contains(t, text, "Current directory: /work")
	assert.Contains(t, text, "9. Exit")
	assert.Contains(t, text, "Files in /work:")
	assert.Contains(t, text, "sub/")
	assert.Contains(t, text, "a.txt (5.00 B)")
	assert.Contains(t, text, "Exiting...")
	assert.Less(t, strings.Index(text, "sub/"), strings.Index(text, "a.txt"))
}

func TestRunEndOfInputExits(t *testing.T) {
	c, out, _ := newConsole(t, "")
	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), "Exiting...")
}

func TestRunReportsBadSelectionAndContinues(t *testing.T) {
	c, out, _ := newConsole(t, "abc\n42\n9\n")
	require.NoError(t, c.Run())

	text := out.String()
	assert.Contains(t, text, "Error: ")
	assert.Contains(t, text, "42")
	assert.Equal(t, 3, strings.Count(text, "Option: "))
}

func TestRunCreateAndNavigate(t *testing.T) {
	c, out, mfs := newConsole(t, "3\nnew\n8\nnew\n2\nf.txt\n9\n")
	require.NoError(t, c.Run())

	_, err := mfs.Stat("/work/new/f.txt")
	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "Directory created: /work/new")
	assert.Contains(t, text, "Current directory: /work/new")
	assert.Contains(t, text, "File created: /work/new/f.txt")
}

func TestRunNavigateAboveRootWarns(t *testing.T) {
	c, out, _ := newConsole(t, "8\n/\n8\n..\n9\n")
	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), "Already at the root directory")
}

func TestRunInspect(t *testing.T) {
	c, out, _ := newConsole(t, "7\na.txt\n7\n0\n9\n")
	require.NoError(t, c.Run())

	text := out.String()
	assert.Contains(t, text, "File properties:")
	assert.Contains(t, text, "Name:          a.txt")
	assert.Contains(t, text, "Size:          5.00 B")
	assert.Contains(t, text, "Regular file:  yes")
	assert.Contains(t, text, "Symbolic link: no")
	assert.Contains(t, text, "Inspection canceled")
}

func TestRunCanceledCommand(t *testing.T) {
	c, out, _ := newConsole(t, "2\n")
	require.NoError(t, c.Run())
	text := out.String()
	assert.Contains(t, text, "Canceled")
	assert.Contains(t, text, "Exiting...")
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("one\r\nyes\nlast"), &out)

	got, err := p.InputText("First")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	ok, err := p.Confirm("Sure")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = p.InputSecret("Secret")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.InputText("Again")
	assert.True(t, isAbort(err))
	assert.Contains(t, out.String(), "First: ")
	assert.Contains(t, out.String(), "Sure [y/N]: ")
}

func TestCredentialsPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("CORP\\alice\nsecret\ny\n"), &out)
	cp := NewCredentialsPrompt(p, NewPrinter(&out, true), true)

	creds, err := cp.Get("fileserver", "public", "/docs")
	require.NoError(t, err)
	assert.Equal(t, fileinfo.Credentials{Domain: "CORP", Username: "alice", Password: "secret", Persist: true}, creds)
	assert.Contains(t, out.String(), "smb://fileserver/public")
}

func TestCredentialsPromptWithoutRemember(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("bob\npw\n"), &out)
	cp := NewCredentialsPrompt(p, NewPrinter(&out, true), false)

	creds, err := cp.Get("h", "s", "")
	require.NoError(t, err)
	assert.Equal(t, "", creds.Domain)
	assert.Equal(t, "bob", creds.Username)
	assert.False(t, creds.Persist)
	assert.NotContains(t, out.String(), "Remember")
}

func TestPrinterNoColor(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true)
	p.Success("ok %d", 1)
	p.Dir("docs/")
	assert.Equal(t, "ok 1\ndocs/\n", out.String())
}
