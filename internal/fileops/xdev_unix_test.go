//go:build !windows

package fileops

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveAcrossDevicesCopiesThenDeletes(t *testing.T) {
	mfs, v := setup(t)
	require.NoError(t, mfs.MkdirAll("/work/src/sub", 0o755))
	write(t, mfs, "/work/src/a", "A")
	write(t, mfs, "/work/src/sub/b", "B")
	require.NoError(t, mfs.Symlink("a", "/work/src/link"))
	require.NoError(t, mfs.Mkdir("/other", 0o755))

	ops := New(v)
	ops.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}

	dst, err := ops.Move("/work/src", "/other")
	require.NoError(t, err)
	assert.Equal(t, "/other/src", dst)
	assert.Equal(t, "A", read(t, v, "/other/src/a"))
	assert.Equal(t, "B", read(t, v, "/other/src/sub/b"))

	target, err := v.Readlink("/other/src/link")
	require.NoError(t, err)
	assert.Equal(t, "a", target)
	assert.False(t, exists(v, "/work/src"))
}

func TestMoveAcrossDevicesReplacesExistingFile(t *testing.T) {
	mfs, v := setup(t)
	write(t, mfs, "/work/a.txt", "new")
	require.NoError(t, mfs.Mkdir("/other", 0o755))
	write(t, mfs, "/other/a.txt", "old")

	ops := New(v)
	ops.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}

	dst, err := ops.Move("/work/a.txt", "/other")
	require.NoError(t, err)
	assert.Equal(t, "new", read(t, v, dst))
	assert.False(t, exists(v, "/work/a.txt"))
	assert.False(t, exists(v, "/other/a.txt.part"))
}

func TestIsCrossDevice(t *testing.T) {
	assert.True(t, isCrossDevice(&os.LinkError{Err: syscall.EXDEV}))
	assert.False(t, isCrossDevice(&os.LinkError{Err: syscall.EACCES}))
}
