// Package console runs the interactive menu loop on top of the dispatcher.
package console

import (
	"sfm/internal/constants"
	"sfm/internal/dispatch"
	apperrors "sfm/internal/errors"
	"sfm/internal/fileinfo"
	"sfm/internal/listing"
	"sfm/internal/logging"
	"sfm/internal/navigation"
)

// LabelOption is the menu prompt.
const LabelOption = "Option"

var menu = []struct {
	id    int
	label string
}{
	{constants.CommandList, "List files"},
	{constants.CommandCreateFile, "Create file"},
	{constants.CommandCreateDirectory, "Create directory"},
	{constants.CommandDelete, "Delete file or directory"},
	{constants.CommandCopy, "Copy file"},
	{constants.CommandMove, "Move file"},
	{constants.CommandInspect, "Show file properties"},
	{constants.CommandNavigate, "Change directory"},
	{constants.CommandExit, "Exit"},
}

// Console owns the read-dispatch-render loop.
type Console struct {
	nav      *navigation.Navigator
	disp     *dispatch.Dispatcher
	prompter Prompter
	out      *Printer
}

// New creates a Console.
func New(nav *navigation.Navigator, disp *dispatch.Dispatcher, p Prompter, out *Printer) *Console {
	return &Console{nav: nav, disp: disp, prompter: p, out: out}
}

// Run shows the menu until the user exits or input ends. Only unexpected
// prompter failures are returned.
func (c *Console) Run() error {
	for {
		c.printMenu()
		line, err := c.prompter.InputText(LabelOption)
		if err != nil {
			if isAbort(err) {
				c.out.Info("Exiting...")
				return nil
			}
			return err
		}
		id, err := dispatch.ParseCommand(line)
		if err != nil {
			c.renderError(err)
			continue
		}
		outcome := c.disp.Dispatch(id, c.prompter.InputText)
		c.render(outcome)
		if outcome.Exit {
			return nil
		}
	}
}

func (c *Console) printMenu() {
	c.out.Info("")
	c.out.Bold("%s - Current directory: %s", constants.ApplicationTitle, c.nav.Display())
	for _, item := range menu {
		c.out.Info("%d. %s", item.id, item.label)
	}
}

func (c *Console) render(o dispatch.Outcome) {
	switch {
	case o.Err != nil:
		c.renderError(o.Err)
	case o.Listing != nil:
		c.renderListing(*o.Listing)
	case o.Metadata != nil:
		c.renderMetadata(*o.Metadata)
	case o.Exit:
		c.out.Info("%s", o.Message)
	case o.Message != "":
		c.out.Success("%s", o.Message)
	}
}

func (c *Console) renderError(err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindAtRoot:
		c.out.Warn("Already at the root directory")
	case apperrors.KindCanceled:
		c.out.Warn("Canceled")
	default:
		logging.Debug("command error shown", logging.Err(err))
		c.out.Error(err)
	}
}

func (c *Console) renderListing(l listing.Listing) {
	c.out.Bold("Files in %s:", c.nav.DisplayPath(l.Dir))
	if len(l.Entries) == 0 {
		c.out.Info("(empty)")
		return
	}
	for _, e := range l.Entries {
		if e.IsDir {
			c.out.Dir(e.Name + "/")
			continue
		}
		c.out.Info("%s (%s)", e.Name, fileinfo.FormatSize(e.Size))
	}
}

func (c *Console) renderMetadata(md fileinfo.FileMetadata) {
	rows := []struct{ label, value string }{
		{"Name", md.Name},
		{"Path", c.nav.DisplayPath(md.Path)},
		{"Size", fileinfo.FormatSize(md.Size)},
		{"Created", fileinfo.FormatTimestamp(md.Created.Local())},
		{"Modified", fileinfo.FormatTimestamp(md.Modified.Local())},
		{"Directory", fileinfo.FormatFlag(md.IsDir)},
		{"Regular file", fileinfo.FormatFlag(md.IsRegular)},
		{"Symbolic link", fileinfo.FormatFlag(md.IsSymlink)},
	}
	c.out.Bold("File properties:")
	for _, r := range rows {
		c.out.Info("  %-14s %s", r.label+":", r.value)
	}
}
