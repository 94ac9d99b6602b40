// Package navigation owns the session's current directory.
package navigation

import (
	stderrors "errors"

	"sfm/internal/constants"
	apperrors "sfm/internal/errors"
	"sfm/internal/fileinfo"
	"sfm/internal/logging"
)

// Navigator holds the cursor: the directory every relative name is resolved
// against. It is the only writer of the cursor.
type Navigator struct {
	fs     fileinfo.VFS
	cursor string
	loc    fileinfo.Parsed
}

// New returns a Navigator positioned at start, which must be an absolute
// provider-native path. loc supplies how paths are shown to the user.
func New(v fileinfo.VFS, start string, loc fileinfo.Parsed) *Navigator {
	return &Navigator{fs: v, cursor: v.Clean(start), loc: loc}
}

// Cursor returns the provider-native current directory.
func (n *Navigator) Cursor() string { return n.cursor }

// Display returns the current directory as the user should see it.
func (n *Navigator) Display() string { return n.loc.DisplayFor(n.cursor) }

// DisplayPath renders any provider-native path of this session for the user.
func (n *Navigator) DisplayPath(p string) string { return n.loc.DisplayFor(p) }

// FS returns the filesystem the cursor lives on.
func (n *Navigator) FS() fileinfo.VFS { return n.fs }

// Resolve turns user input into an absolute path relative to the cursor.
// It never touches storage.
func (n *Navigator) Resolve(input string) (string, error) {
	p, err := fileinfo.Resolve(n.fs, n.cursor, input)
	if stderrors.Is(err, fileinfo.ErrAtRoot) {
		return p, apperrors.NewAtRoot(n.cursor)
	}
	return p, err
}

// ChangeTo moves the cursor. ".." and "/" behave like GoUp and GoToRoot;
// anything else must name an existing directory (symlinks are followed).
// On failure the cursor is unchanged.
func (n *Navigator) ChangeTo(input string) error {
	switch input {
	case constants.ParentDirectoryName:
		return n.GoUp()
	case constants.RootPath:
		n.GoToRoot()
		return nil
	}
	const op = "navigate"
	target, err := n.Resolve(input)
	if err != nil {
		return err
	}
	fi, err := n.fs.Stat(target)
	if err != nil {
		return apperrors.NewInvalidDirectory(op, target, err)
	}
	if !fi.IsDir() {
		return apperrors.NewInvalidDirectory(op, target, nil)
	}
	n.set(target)
	return nil
}

// GoUp moves the cursor to its parent. At a root it reports AtRoot and the
// cursor stays put.
func (n *Navigator) GoUp() error {
	parent, err := fileinfo.ParentPath(n.fs, n.cursor)
	if err != nil {
		return apperrors.NewAtRoot(n.cursor)
	}
	n.set(parent)
	return nil
}

// GoToRoot moves the cursor to the root of its volume or share.
func (n *Navigator) GoToRoot() {
	n.set(n.fs.Root(n.cursor))
}

func (n *Navigator) set(p string) {
	if p != n.cursor {
		logging.Debug("cursor moved", logging.String("from", n.cursor), logging.Path(p))
	}
	n.cursor = p
}
