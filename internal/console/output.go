package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes user-facing output, colored unless disabled.
type Printer struct {
	out     io.Writer
	noColor bool
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	return &Printer{out: out, noColor: noColor}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.noColor {
		c.DisableColor()
	}
	return c
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a message in green.
func (p *Printer) Success(format string, args ...interface{}) {
	p.paint(color.FgGreen).Fprintf(p.out, format+"\n", args...)
}

// Warn prints a message in yellow.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.paint(color.FgYellow).Fprintf(p.out, format+"\n", args...)
}

// Error prints an error in red.
func (p *Printer) Error(err error) {
	p.paint(color.FgRed).Fprintf(p.out, "Error: %v\n", err)
}

// Bold prints a message in bold.
func (p *Printer) Bold(format string, args ...interface{}) {
	p.paint(color.Bold).Fprintf(p.out, format+"\n", args...)
}

// Dir prints a directory name in cyan.
func (p *Printer) Dir(name string) {
	p.paint(color.FgCyan, color.Bold).Fprintf(p.out, "%s\n", name)
}
