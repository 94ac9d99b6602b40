package fileops

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"

	"sfm/internal/constants"
	"sfm/internal/fileinfo"
	"sfm/internal/logging"
)

// --- copying primitives ---

// maxSideNames bounds the search for a free temporary name.
const maxSideNames = 100

var (
	errNoLinks    = errors.New("provider cannot create symbolic links")
	errNoSideName = errors.New("no free temporary name")
	errNotEmpty   = errors.New("directory not empty")
)

// copyFile copies src to dst through a temporary .part file that is renamed
// over dst once complete. The temporary file is always a new file.
func copyFile(v fileinfo.VFS, src, dst string, mode os.FileMode) error {
	in, err := v.Open(src)
	if err != nil {
		return wrapPath(src, err)
	}
	defer in.Close()

	out, tmp, err := createTemp(v, dst, mode)
	if err != nil {
		return wrapPath(tmp, err)
	}
	buf := make([]byte, 1<<20) // 1 MiB
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		v.Remove(tmp)
		return wrapPath(src, err)
	}
	if err := out.Close(); err != nil {
		v.Remove(tmp)
		return wrapPath(tmp, err)
	}
	logging.Debug("rename", logging.String("from", tmp), logging.Path(dst))
	if err := replace(v, v.Rename, tmp, dst); err != nil {
		v.Remove(tmp)
		return wrapPath(dst, err)
	}
	return nil
}

// createTemp exclusively creates the first free "<p>.part", "<p>.part1", ...
func createTemp(v fileinfo.VFS, p string, mode os.FileMode) (io.WriteCloser, string, error) {
	for i := 0; i < maxSideNames; i++ {
		tmp := sideName(p, constants.PartialFileSuffix, i)
		out, err := v.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode.Perm())
		if err == nil {
			return out, tmp, nil
		}
		if _, lerr := v.Lstat(tmp); lerr != nil {
			return nil, tmp, err
		}
	}
	return nil, p + constants.PartialFileSuffix, errNoSideName
}

// freeName returns the first of "<p><suffix>", "<p><suffix>1", ... that does
// not exist.
func freeName(v fileinfo.VFS, p, suffix string) (string, error) {
	for i := 0; i < maxSideNames; i++ {
		name := sideName(p, suffix, i)
		_, err := v.Lstat(name)
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", wrapPath(name, err)
		}
	}
	return "", wrapPath(p+suffix, errNoSideName)
}

func sideName(p, suffix string, i int) string {
	if i == 0 {
		return p + suffix
	}
	return p + suffix + strconv.Itoa(i)
}

// replace renames from over to. When the rename is refused and something is
// at to, that entry is renamed aside, the rename is retried, and the entry is
// put back if the retry fails. It is removed only after from is in place.
// Cross-device failures are returned untouched.
func replace(v fileinfo.VFS, rename func(oldpath, newpath string) error, from, to string) error {
	err := rename(from, to)
	if err == nil || isCrossDevice(err) {
		return err
	}
	if _, lerr := v.Lstat(to); lerr != nil {
		return err
	}
	aside, aerr := freeName(v, to, constants.ReplacedFileSuffix)
	if aerr != nil {
		return err
	}
	if rerr := v.Rename(to, aside); rerr != nil {
		return err
	}
	if rerr := rename(from, to); rerr != nil {
		if berr := v.Rename(aside, to); berr != nil {
			logging.Warn("could not restore replaced entry",
				logging.Path(to), logging.String("saved", aside), logging.Err(berr))
		}
		return rerr
	}
	if rerr := v.Remove(aside); rerr != nil {
		logging.Warn("could not remove replaced entry", logging.Path(aside), logging.Err(rerr))
	}
	return nil
}

// copyTree copies src (file, symlink or directory) to dst, which must not exist.
func copyTree(v fileinfo.VFS, src, dst string) error {
	fi, err := v.Lstat(src)
	if err != nil {
		return wrapPath(src, err)
	}

	if fi.IsDir() {
		logging.Debug("mkdir", logging.Path(dst))
		if err := v.Mkdir(dst, fi.Mode().Perm()); err != nil {
			return wrapPath(dst, err)
		}
		entries, err := v.ReadDir(src)
		if err != nil {
			return wrapPath(src, err)
		}
		for _, e := range entries {
			if err := copyTree(v, v.Join(src, e.Name()), v.Join(dst, e.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	// handle symlink as symlink
	if fi.Mode()&os.ModeSymlink != 0 {
		linker, ok := v.(fileinfo.Linker)
		if !ok {
			return wrapPath(src, errNoLinks)
		}
		target, err := linker.Readlink(src)
		if err != nil {
			return wrapPath(src, err)
		}
		logging.Debug("symlink", logging.Path(dst), logging.String("target", target))
		if err := linker.Symlink(target, dst); err != nil {
			return wrapPath(dst, err)
		}
		return nil
	}

	logging.Debug("copy", logging.String("from", src), logging.Path(dst))
	return copyFile(v, src, dst, fi.Mode())
}

// removeTree deletes p post-order: children before their parent. Symlinks
// are removed, never followed. fi is the lstat information of p.
func removeTree(v fileinfo.VFS, p string, fi os.FileInfo) error {
	if fi.IsDir() {
		entries, err := v.ReadDir(p)
		if err != nil {
			return wrapPath(p, err)
		}
		for _, e := range entries {
			child := v.Join(p, e.Name())
			cfi, err := v.Lstat(child)
			if err != nil {
				return wrapPath(child, err)
			}
			if err := removeTree(v, child, cfi); err != nil {
				return err
			}
		}
	}
	logging.Debug("remove", logging.Path(p))
	if err := v.Remove(p); err != nil {
		return wrapPath(p, err)
	}
	return nil
}

// --- error wrapping helpers ---

type opError struct {
	Path string
	Err  error
}

func (e opError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e opError) Unwrap() error { return e.Err }
func wrapPath(p string, err error) error {
	if err == nil {
		return nil
	}
	return opError{Path: p, Err: err}
}

// failingPath returns the path recorded by wrapPath and the bare cause.
func failingPath(err error) (string, error) {
	var oe opError
	if errors.As(err, &oe) {
		return oe.Path, oe.Err
	}
	return "", err
}
