package fileinfo

import (
	"io"
	"os"
	"time"
)

// Capabilities describes provider abilities.
type Capabilities struct {
	BirthTime bool // provider can report creation times
	Remote    bool // operations cross the network
}

// PathSyntax is the pure path half of a VFS. None of its methods touch storage.
type PathSyntax interface {
	Join(elem ...string) string
	Dir(p string) string
	Base(p string) string
	IsAbs(p string) bool
	Clean(p string) string
	// Root returns the root component of p ("/", "C:\", or a share root).
	Root(p string) string
}

// VFS defines the operations sfm needs from a storage provider.
// Paths are provider-native absolute paths.
type VFS interface {
	PathSyntax

	ReadDir(path string) ([]os.DirEntry, error)
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	OpenFile(path string, flag int, perm os.FileMode) (io.WriteCloser, error)
	Mkdir(path string, perm os.FileMode) error
	Remove(path string) error
	Rename(oldpath, newpath string) error

	// BirthTime reports the creation time of path when the provider knows it.
	// fi is the already-fetched info for path, if any.
	BirthTime(path string, fi os.FileInfo) (time.Time, bool)
	Capabilities() Capabilities
}

// Linker is implemented by providers that can read and create symbolic links.
type Linker interface {
	Readlink(path string) (string, error)
	Symlink(target, link string) error
}
