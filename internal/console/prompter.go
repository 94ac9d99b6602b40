package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// Prompter abstracts interactive input so the console works the same on a
// terminal and on piped input.
type Prompter interface {
	// InputText reads one line of text.
	InputText(label string) (string, error)
	// InputSecret reads one line without echoing it where possible.
	InputSecret(label string) (string, error)
	// Confirm asks a yes/no question; the default answer is no.
	Confirm(label string) (bool, error)
}

// NewPrompter picks promptui when in is a terminal, a line reader otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &TerminalPrompter{}
	}
	return NewLinePrompter(in, out)
}

// isAbort reports whether err means the user abandoned input.
func isAbort(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, promptui.ErrInterrupt)
}

// TerminalPrompter implements Prompter using promptui.
type TerminalPrompter struct{}

// InputText implements Prompter.InputText using promptui.Prompt.
func (p *TerminalPrompter) InputText(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}
	return prompt.Run()
}

// InputSecret implements Prompter.InputSecret with a masked promptui.Prompt.
func (p *TerminalPrompter) InputSecret(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return prompt.Run()
}

// Confirm implements Prompter.Confirm using promptui.Select.
func (p *TerminalPrompter) Confirm(label string) (bool, error) {
	templates := &promptui.SelectTemplates{
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}
	prompt := promptui.Select{
		Label:     label,
		Items:     []string{"No", "Yes"},
		Templates: templates,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return false, err
	}
	return idx == 1, nil
}

// LinePrompter reads answers line by line. Used for pipes and tests.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// InputText prints "label: " and returns the next line without its line ending.
// A final line without a newline is still returned; after that io.EOF.
func (p *LinePrompter) InputText(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// InputSecret reads like InputText; piped input has no echo to suppress.
func (p *LinePrompter) InputSecret(label string) (string, error) {
	return p.InputText(label)
}

// Confirm accepts y or yes, case-insensitively.
func (p *LinePrompter) Confirm(label string) (bool, error) {
	answer, err := p.InputText(label + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
