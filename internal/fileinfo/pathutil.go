package fileinfo

import (
	"errors"

	"sfm/internal/constants"
)

// ErrAtRoot is returned by Resolve when ".." is applied to a root path.
// It signals a no-op transition rather than a failure.
var ErrAtRoot = errors.New("already at root")

// Resolve combines cursor with user input without touching storage.
//   - ".." yields the parent of cursor, or ErrAtRoot when cursor is a root.
//   - "/" yields the root component of cursor.
//   - anything else is joined onto cursor (absolute input replaces it).
//
// The result is cleaned; existence is the caller's concern.
func Resolve(sx PathSyntax, cursor, input string) (string, error) {
	switch input {
	case constants.ParentDirectoryName:
		return ParentPath(sx, cursor)
	case constants.RootPath:
		return sx.Root(cursor), nil
	}
	if sx.IsAbs(input) {
		return sx.Clean(input), nil
	}
	return sx.Join(cursor, input), nil
}

// ParentPath returns the parent directory of p, or ErrAtRoot when p has none.
func ParentPath(sx PathSyntax, p string) (string, error) {
	clean := sx.Clean(p)
	parent := sx.Dir(clean)
	if parent == clean {
		return clean, ErrAtRoot
	}
	return parent, nil
}
