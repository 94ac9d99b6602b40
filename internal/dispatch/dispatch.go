// Package dispatch maps menu selections to navigator commands.
package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"sfm/internal/constants"
	apperrors "sfm/internal/errors"
	"sfm/internal/fileinfo"
	"sfm/internal/fileops"
	"sfm/internal/listing"
	"sfm/internal/logging"
	"sfm/internal/navigation"
)

// Prompt asks the user for one line of input. An error means the input was
// abandoned (end of input, interrupt) and the command is canceled.
type Prompt func(label string) (string, error)

// Prompt labels
const (
	LabelFileName       = "File name"
	LabelDirectoryName  = "Directory name"
	LabelDeleteName     = "File or directory to delete"
	LabelConfirmDelete  = "Delete %s? [y/N]"
	LabelCopySource     = "File to copy"
	LabelCopyDest       = "Name of the copy"
	LabelMoveSource     = "File to move"
	LabelMoveDestDir    = "Destination directory"
	LabelInspectName    = "File to inspect (0 to cancel)"
	LabelNavigateTarget = "Directory (.. for parent, / for root)"
)

// Outcome is the result of one dispatched command. Exactly one of the
// payload fields or Err is meaningful.
type Outcome struct {
	Command  int
	Message  string
	Listing  *listing.Listing
	Metadata *fileinfo.FileMetadata
	Err      *apperrors.AppError
	Exit     bool
}

// Options tunes dispatcher behaviour.
type Options struct {
	ConfirmDelete bool
}

// Dispatcher runs one command at a time against the navigator's cursor.
type Dispatcher struct {
	nav    *navigation.Navigator
	ops    *fileops.Operations
	lister *listing.Lister
	opts   Options
}

// New wires a Dispatcher.
func New(nav *navigation.Navigator, ops *fileops.Operations, lister *listing.Lister, opts Options) *Dispatcher {
	return &Dispatcher{nav: nav, ops: ops, lister: lister, opts: opts}
}

// ParseCommand turns a menu selection into a command id. Non-numeric input
// is InvalidInput; numbers outside the menu are UnrecognizedCommand.
func ParseCommand(line string) (int, error) {
	s := strings.TrimSpace(line)
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.NewInvalidInput(s, err)
	}
	if id < constants.CommandList || id > constants.CommandExit {
		return 0, apperrors.NewUnrecognizedCommand(id)
	}
	return id, nil
}

// Dispatch executes command id, asking for its arguments through prompt.
func (d *Dispatcher) Dispatch(id int, prompt Prompt) Outcome {
	out := Outcome{Command: id}
	var err error
	switch id {
	case constants.CommandList:
		err = d.list(&out)
	case constants.CommandCreateFile:
		err = d.createFile(&out, prompt)
	case constants.CommandCreateDirectory:
		err = d.createDirectory(&out, prompt)
	case constants.CommandDelete:
		err = d.delete(&out, prompt)
	case constants.CommandCopy:
		err = d.copy(&out, prompt)
	case constants.CommandMove:
		err = d.move(&out, prompt)
	case constants.CommandInspect:
		err = d.inspect(&out, prompt)
	case constants.CommandNavigate:
		err = d.navigate(&out, prompt)
	case constants.CommandExit:
		out.Exit = true
		out.Message = "Exiting..."
	default:
		err = apperrors.NewUnrecognizedCommand(id)
	}
	if err != nil {
		out.Err = toAppError(err)
		logging.Debug("command failed", logging.Int("command", id), logging.Err(err))
	}
	return out
}

func (d *Dispatcher) list(out *Outcome) error {
	l, err := d.lister.List(d.nav.Cursor())
	if err != nil {
		return err
	}
	out.Listing = &l
	return nil
}

func (d *Dispatcher) createFile(out *Outcome, prompt Prompt) error {
	p, err := d.askPath(prompt, "createFile", LabelFileName)
	if err != nil {
		return err
	}
	if err := d.ops.CreateFile(p); err != nil {
		return err
	}
	out.Message = "File created: " + d.nav.DisplayPath(p)
	return nil
}

func (d *Dispatcher) createDirectory(out *Outcome, prompt Prompt) error {
	p, err := d.askPath(prompt, "createDirectory", LabelDirectoryName)
	if err != nil {
		return err
	}
	if err := d.ops.CreateDirectory(p); err != nil {
		return err
	}
	out.Message = "Directory created: " + d.nav.DisplayPath(p)
	return nil
}

func (d *Dispatcher) delete(out *Outcome, prompt Prompt) error {
	const op = "delete"
	p, err := d.askPath(prompt, op, LabelDeleteName)
	if err != nil {
		return err
	}
	if d.containsCursor(p) {
		return apperrors.NewUnsupported(op, p, "cannot delete the current directory or one of its parents")
	}
	if d.opts.ConfirmDelete {
		answer, err := prompt(fmt.Sprintf(LabelConfirmDelete, d.nav.DisplayPath(p)))
		if err != nil {
			return apperrors.NewCanceled(op, err)
		}
		if !confirmed(answer) {
			out.Message = "Nothing deleted"
			return nil
		}
	}
	if err := d.ops.Delete(p); err != nil {
		return err
	}
	out.Message = "Deleted: " + d.nav.DisplayPath(p)
	return nil
}

func (d *Dispatcher) copy(out *Outcome, prompt Prompt) error {
	const op = "copy"
	src, err := d.askPath(prompt, op, LabelCopySource)
	if err != nil {
		return err
	}
	dst, err := d.askPath(prompt, op, LabelCopyDest)
	if err != nil {
		return err
	}
	if err := d.ops.Copy(src, dst); err != nil {
		return err
	}
	out.Message = "Copied " + d.nav.DisplayPath(src) + " to " + d.nav.DisplayPath(dst)
	return nil
}

func (d *Dispatcher) move(out *Outcome, prompt Prompt) error {
	const op = "move"
	src, err := d.askPath(prompt, op, LabelMoveSource)
	if err != nil {
		return err
	}
	destDir, err := d.askPath(prompt, op, LabelMoveDestDir)
	if err != nil {
		return err
	}
	dst, err := d.ops.Move(src, destDir)
	if err != nil {
		return err
	}
	out.Message = "Moved " + d.nav.DisplayPath(src) + " to " + d.nav.DisplayPath(dst)
	return nil
}

func (d *Dispatcher) inspect(out *Outcome, prompt Prompt) error {
	const op = "inspect"
	name, err := prompt(LabelInspectName)
	if err != nil {
		return apperrors.NewCanceled(op, err)
	}
	if strings.TrimSpace(name) == constants.InspectCancelInput {
		out.Message = "Inspection canceled"
		return nil
	}
	p, err := d.resolve(op, name)
	if err != nil {
		return err
	}
	md, err := fileinfo.Inspect(d.nav.FS(), p)
	if err != nil {
		return err
	}
	out.Metadata = &md
	return nil
}

func (d *Dispatcher) navigate(out *Outcome, prompt Prompt) error {
	const op = "navigate"
	target, err := prompt(LabelNavigateTarget)
	if err != nil {
		return apperrors.NewCanceled(op, err)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return apperrors.NewInvalidDirectory(op, target, nil)
	}
	if err := d.nav.ChangeTo(target); err != nil {
		return err
	}
	out.Message = "Current directory: " + d.nav.Display()
	return nil
}

// askPath prompts for a name and resolves it against the cursor.
func (d *Dispatcher) askPath(prompt Prompt, op, label string) (string, error) {
	name, err := prompt(label)
	if err != nil {
		return "", apperrors.NewCanceled(op, err)
	}
	return d.resolve(op, name)
}

// resolve rejects empty names, which would otherwise resolve to the cursor
// itself.
func (d *Dispatcher) resolve(op, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &apperrors.AppError{
			Kind:      apperrors.KindInvalidInput,
			Operation: op,
			Message:   "a name is required",
		}
	}
	return d.nav.Resolve(name)
}

// containsCursor reports whether p is the cursor or one of its ancestors.
func (d *Dispatcher) containsCursor(p string) bool {
	v := d.nav.FS()
	cur := d.nav.Cursor()
	for {
		if cur == p {
			return true
		}
		parent, err := fileinfo.ParentPath(v, cur)
		if err != nil {
			return false
		}
		cur = parent
	}
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	return apperrors.NewIOError("command", "", err)
}
