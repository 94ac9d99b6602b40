package fileinfo

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/avfs/avfs"
	"github.com/avfs/avfs/vfs/osfs"
)

// Backend is the subset of avfs.VFS that LocalFS drives. Both osfs (host
// filesystem) and memfs (in-memory) satisfy it.
type Backend interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Open(name string) (avfs.File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (avfs.File, error)
	Mkdir(name string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Readlink(name string) (string, error)
	Symlink(oldname, newname string) error
	Join(elem ...string) string
	Dir(path string) string
	Base(path string) string
	IsAbs(path string) bool
	Clean(path string) string
	PathSeparator() uint8
}

// LocalFS implements VFS on top of an avfs backend.
type LocalFS struct {
	vfs   Backend
	birth func(path string, fi os.FileInfo) (time.Time, bool)
}

// NewLocalFS returns a LocalFS over the host filesystem.
func NewLocalFS() LocalFS {
	host := osfs.New()
	return LocalFS{vfs: host, birth: hostBirthTime}
}

// NewLocalFSFrom wraps an arbitrary avfs backend (memfs in tests).
// Creation times fall back to modification times.
func NewLocalFSFrom(vfs Backend) LocalFS {
	return LocalFS{vfs: vfs}
}

func (l LocalFS) ReadDir(path string) ([]os.DirEntry, error) { return l.vfs.ReadDir(path) }
func (l LocalFS) Stat(path string) (os.FileInfo, error)      { return l.vfs.Stat(path) }
func (l LocalFS) Lstat(path string) (os.FileInfo, error)     { return l.vfs.Lstat(path) }
func (l LocalFS) Mkdir(path string, perm os.FileMode) error  { return l.vfs.Mkdir(path, perm) }
func (l LocalFS) Remove(path string) error                   { return l.vfs.Remove(path) }
func (l LocalFS) Rename(oldpath, newpath string) error       { return l.vfs.Rename(oldpath, newpath) }
func (l LocalFS) Readlink(path string) (string, error)       { return l.vfs.Readlink(path) }
func (l LocalFS) Symlink(target, link string) error          { return l.vfs.Symlink(target, link) }
func (l LocalFS) Join(elem ...string) string                 { return l.vfs.Join(elem...) }
func (l LocalFS) Dir(p string) string                        { return l.vfs.Dir(p) }
func (l LocalFS) Base(p string) string                       { return l.vfs.Base(p) }
func (l LocalFS) IsAbs(p string) bool                        { return l.vfs.IsAbs(p) }
func (l LocalFS) Clean(p string) string                      { return l.vfs.Clean(p) }

func (l LocalFS) Open(path string) (io.ReadCloser, error) {
	f, err := l.vfs.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (l LocalFS) OpenFile(path string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	f, err := l.vfs.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Root returns the volume root of p. Volume names only exist when the
// backend shares the host's separator.
func (l LocalFS) Root(p string) string {
	sep := l.vfs.PathSeparator()
	if sep == os.PathSeparator {
		if vol := filepath.VolumeName(p); vol != "" {
			return vol + string(sep)
		}
	}
	return string(sep)
}

func (l LocalFS) BirthTime(path string, fi os.FileInfo) (time.Time, bool) {
	if l.birth == nil {
		return time.Time{}, false
	}
	return l.birth(path, fi)
}

func (l LocalFS) Capabilities() Capabilities {
	return Capabilities{BirthTime: l.birth != nil}
}
