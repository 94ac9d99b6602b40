package fileinfo

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	apperrors "sfm/internal/errors"
)

// FileType represents the type of file
type FileType int

const (
	FileTypeRegular FileType = iota
	FileTypeDirectory
	FileTypeSymlink
	FileTypeHidden
)

// DirectoryEntry describes one child of a listed directory.
// Size is meaningful only when HasSize is set, which is never the case for directories.
type DirectoryEntry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     uint64
	HasSize  bool
	FileType FileType
}

// FileMetadata is a snapshot of one path taken at inspection time.
type FileMetadata struct {
	Name      string
	Path      string
	Size      uint64
	Created   time.Time
	Modified  time.Time
	IsDir     bool
	IsRegular bool
	IsSymlink bool
}

// DetermineFileType determines the display type from lstat mode and name.
// Symlinks win over directories, directories over hidden files.
func DetermineFileType(path, name string, mode os.FileMode, isDir bool) FileType {
	if mode&os.ModeSymlink != 0 {
		return FileTypeSymlink
	}
	if isDir {
		return FileTypeDirectory
	}
	if strings.HasPrefix(name, ".") {
		return FileTypeHidden
	}
	if runtime.GOOS == "windows" && IsWindowsHidden(path) {
		return FileTypeHidden
	}
	return FileTypeRegular
}

// IsHidden reports whether name (at path) is hidden by platform convention.
func IsHidden(path, name string) bool {
	return strings.HasPrefix(name, ".") || (runtime.GOOS == "windows" && IsWindowsHidden(path))
}

// SizeOf clamps a FileInfo size to an unsigned byte count.
func SizeOf(fi os.FileInfo) uint64 {
	if s := fi.Size(); s > 0 {
		return uint64(s)
	}
	return 0
}

// Inspect takes a metadata snapshot of p. Symbolic links are followed for
// size, times and type; IsSymlink describes p itself. A dangling link is
// described by its own lstat information.
func Inspect(v VFS, p string) (FileMetadata, error) {
	const op = "inspect"
	lfi, err := v.Lstat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileMetadata{}, apperrors.NewNotFound(op, p, err)
		}
		return FileMetadata{}, apperrors.NewIOError(op, p, err)
	}
	isLink := lfi.Mode()&os.ModeSymlink != 0
	fi := lfi
	if isLink {
		if target, err := v.Stat(p); err == nil {
			fi = target
		}
	}
	created, ok := v.BirthTime(p, fi)
	if !ok {
		created = fi.ModTime()
	}
	return FileMetadata{
		Name:      v.Base(p),
		Path:      p,
		Size:      SizeOf(fi),
		Created:   created,
		Modified:  fi.ModTime(),
		IsDir:     fi.IsDir(),
		IsRegular: fi.Mode().IsRegular(),
		IsSymlink: isLink,
	}, nil
}
