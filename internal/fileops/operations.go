// Package fileops implements the mutating file operations: create, delete,
// copy and move. Every operation re-checks storage before it acts.
package fileops

import (
	"errors"
	"io/fs"
	"os"

	"sfm/internal/constants"
	apperrors "sfm/internal/errors"
	"sfm/internal/fileinfo"
	"sfm/internal/logging"
)

// Operations performs file operations on absolute, already resolved paths.
type Operations struct {
	fs     fileinfo.VFS
	rename func(oldpath, newpath string) error
}

// New returns Operations over v.
func New(v fileinfo.VFS) *Operations {
	return &Operations{fs: v, rename: v.Rename}
}

// CreateFile creates an empty regular file. Anything already at p, including
// a dangling symlink, is left untouched and reported as AlreadyExists.
func (o *Operations) CreateFile(p string) error {
	const op = "createFile"
	if err := o.mustNotExist(op, p); err != nil {
		return err
	}
	f, err := o.fs.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.DefaultFilePerm)
	if err != nil {
		return o.createFailed(op, p, err)
	}
	if err := f.Close(); err != nil {
		return o.fail(op, p, err)
	}
	logging.Debug("created file", logging.Op(op), logging.Path(p))
	return nil
}

// CreateDirectory creates a single directory level.
func (o *Operations) CreateDirectory(p string) error {
	const op = "createDirectory"
	if err := o.mustNotExist(op, p); err != nil {
		return err
	}
	if err := o.fs.Mkdir(p, constants.DefaultDirPerm); err != nil {
		return o.createFailed(op, p, err)
	}
	logging.Debug("created directory", logging.Op(op), logging.Path(p))
	return nil
}

// Delete removes p. Directories are removed with all their contents; the
// first failure stops the deletion and entries already removed stay removed.
func (o *Operations) Delete(p string) error {
	const op = "delete"
	fi, err := o.fs.Lstat(p)
	if err != nil {
		return o.missing(op, p, err)
	}
	if err := removeTree(o.fs, p, fi); err != nil {
		return o.fail(op, p, err)
	}
	logging.Debug("deleted", logging.Op(op), logging.Path(p))
	return nil
}

// Copy copies the regular file src to dst, replacing dst when it is a file.
// Directory sources and directory destinations are Unsupported.
func (o *Operations) Copy(src, dst string) error {
	const op = "copy"
	sfi, err := o.fs.Stat(src)
	if err != nil {
		return o.missing(op, src, err)
	}
	if sfi.IsDir() {
		return apperrors.NewUnsupported(op, src, "copying directories is not supported")
	}
	if dfi, err := o.fs.Stat(dst); err == nil {
		if dfi.IsDir() {
			return apperrors.NewUnsupported(op, dst, "destination is a directory")
		}
		if o.fs.Clean(src) == o.fs.Clean(dst) || os.SameFile(sfi, dfi) {
			logging.Debug("copy onto itself", logging.Op(op), logging.Path(src))
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return o.fail(op, dst, err)
	}
	if err := copyFile(o.fs, src, dst, sfi.Mode()); err != nil {
		return o.fail(op, dst, err)
	}
	logging.Debug("copied", logging.Op(op), logging.String("from", src), logging.Path(dst))
	return nil
}

// Move moves src into destDir under its own name and returns the new path.
// An entry already at the destination is replaced once the move succeeds,
// unless it is a non-empty directory. A directory cannot move into its own
// subtree. A rename across devices falls back to copy and delete.
func (o *Operations) Move(src, destDir string) (string, error) {
	const op = "move"
	sfi, err := o.fs.Lstat(src)
	if err != nil {
		return "", o.missing(op, src, err)
	}
	dfi, err := o.fs.Stat(destDir)
	if err != nil {
		return "", apperrors.NewInvalidDirectory(op, destDir, err)
	}
	if !dfi.IsDir() {
		return "", apperrors.NewInvalidDirectory(op, destDir, nil)
	}

	dst := o.fs.Join(destDir, o.fs.Base(src))
	if o.fs.Clean(src) == dst {
		logging.Debug("move onto itself", logging.Op(op), logging.Path(src))
		return dst, nil
	}
	if sfi.IsDir() && o.within(destDir, src) {
		return "", apperrors.NewUnsupported(op, src, "cannot move a directory into itself")
	}

	if existing, err := o.fs.Lstat(dst); err == nil {
		if os.SameFile(sfi, existing) {
			logging.Debug("move onto itself", logging.Op(op), logging.Path(src))
			return dst, nil
		}
		if existing.IsDir() {
			entries, err := o.fs.ReadDir(dst)
			if err != nil {
				return "", o.fail(op, dst, err)
			}
			if len(entries) > 0 {
				return "", o.fail(op, dst, wrapPath(dst, errNotEmpty))
			}
		}
		logging.Debug("replacing", logging.Op(op), logging.Path(dst))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", o.fail(op, dst, err)
	}

	err = replace(o.fs, o.rename, src, dst)
	if err != nil && isCrossDevice(err) {
		logging.Debug("cross-device move, copying", logging.Op(op), logging.Path(src))
		err = o.moveAcross(src, dst, sfi)
	}
	if err != nil {
		return "", o.fail(op, src, err)
	}
	logging.Debug("moved", logging.Op(op), logging.String("from", src), logging.Path(dst))
	return dst, nil
}

// moveAcross copies src beside dst under a temporary name, swaps it into
// place and only then deletes src. A failed copy leaves dst untouched.
func (o *Operations) moveAcross(src, dst string, sfi os.FileInfo) error {
	tmp, err := freeName(o.fs, dst, constants.PartialFileSuffix)
	if err != nil {
		return err
	}
	if err := copyTree(o.fs, src, tmp); err != nil {
		o.discard(tmp)
		return err
	}
	if err := replace(o.fs, o.fs.Rename, tmp, dst); err != nil {
		o.discard(tmp)
		return wrapPath(dst, err)
	}
	return removeTree(o.fs, src, sfi)
}

func (o *Operations) discard(p string) {
	fi, err := o.fs.Lstat(p)
	if err != nil {
		return
	}
	if err := removeTree(o.fs, p, fi); err != nil {
		logging.Warn("could not remove partial copy", logging.Path(p), logging.Err(err))
	}
}

// within reports whether p is dir or lies below it.
func (o *Operations) within(p, dir string) bool {
	dir = o.fs.Clean(dir)
	for cur := o.fs.Clean(p); ; {
		if cur == dir {
			return true
		}
		parent, err := fileinfo.ParentPath(o.fs, cur)
		if err != nil {
			return false
		}
		cur = parent
	}
}

func (o *Operations) mustNotExist(op, p string) error {
	_, err := o.fs.Lstat(p)
	if err == nil {
		return apperrors.NewAlreadyExists(op, p)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return o.fail(op, p, err)
	}
	return nil
}

// createFailed reports a create that lost a race with another writer as
// AlreadyExists.
func (o *Operations) createFailed(op, p string, err error) error {
	if _, lerr := o.fs.Lstat(p); lerr == nil {
		return apperrors.NewAlreadyExists(op, p)
	}
	return o.fail(op, p, err)
}

func (o *Operations) missing(op, p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewNotFound(op, p, err)
	}
	return o.fail(op, p, err)
}

// fail converts err into an IoError naming the path that actually failed.
func (o *Operations) fail(op, p string, err error) error {
	if failed, cause := failingPath(err); failed != "" {
		p, err = failed, cause
	}
	logging.Warn("operation failed", logging.Op(op), logging.Path(p), logging.Err(err))
	return apperrors.NewIOError(op, p, err)
}
