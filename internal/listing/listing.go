// Package listing produces ordered snapshots of a directory's children.
package listing

import (
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	apperrors "sfm/internal/errors"
	"sfm/internal/fileinfo"
	"sfm/internal/logging"
)

// Options narrows what a listing shows. The zero value hides nothing.
type Options struct {
	// HideHidden drops dot-files (and Windows hidden files).
	HideHidden bool
	// Pattern is a doublestar glob matched against file names. Directories
	// are always shown so the listing stays navigable.
	Pattern string
}

// Listing is one snapshot of a directory.
type Listing struct {
	Dir     string
	Entries []fileinfo.DirectoryEntry
}

// Lister reads directories from a VFS.
type Lister struct {
	fs   fileinfo.VFS
	opts Options
}

// New returns a Lister over v.
func New(v fileinfo.VFS, opts Options) *Lister {
	return &Lister{fs: v, opts: opts}
}

// Options returns the active filter options.
func (l *Lister) Options() Options { return l.opts }

// List returns the direct children of dir: names ascending byte-wise, then
// directories ahead of everything else. Any read failure yields no entries.
func (l *Lister) List(dir string) (Listing, error) {
	const op = "list"
	dirEntries, err := l.fs.ReadDir(dir)
	if err != nil {
		logging.Warn("list failed", logging.Op(op), logging.Path(dir), logging.Err(err))
		return Listing{}, apperrors.NewIOError(op, dir, err)
	}

	entries := make([]fileinfo.DirectoryEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		full := l.fs.Join(dir, name)

		lfi, err := l.fs.Lstat(full)
		if err != nil {
			logging.Warn("list failed", logging.Op(op), logging.Path(full), logging.Err(err))
			return Listing{}, apperrors.NewIOError(op, full, err)
		}
		fi := lfi
		if lfi.Mode()&os.ModeSymlink != 0 {
			// a dangling link is described by its own lstat information
			if target, err := l.fs.Stat(full); err == nil {
				fi = target
			}
		}

		entry := fileinfo.DirectoryEntry{
			Name:     name,
			Path:     full,
			IsDir:    fi.IsDir(),
			FileType: fileinfo.DetermineFileType(full, name, lfi.Mode(), fi.IsDir()),
		}
		if !entry.IsDir {
			entry.Size = fileinfo.SizeOf(fi)
			entry.HasSize = true
		}
		if !l.keep(entry) {
			continue
		}
		entries = append(entries, entry)
	}

	Sort(entries)
	logging.Debug("listed", logging.Op(op), logging.Path(dir), logging.Int("entries", len(entries)))
	return Listing{Dir: dir, Entries: entries}, nil
}

func (l *Lister) keep(e fileinfo.DirectoryEntry) bool {
	if l.opts.HideHidden && fileinfo.IsHidden(e.Path, e.Name) {
		return false
	}
	if l.opts.Pattern == "" || e.IsDir {
		return true
	}
	matched, err := doublestar.Match(l.opts.Pattern, e.Name)
	return err == nil && matched
}

// Sort orders entries by name, then stably moves directories to the front.
func Sort(entries []fileinfo.DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IsDir && !entries[j].IsDir
	})
}
