// Package console owns user-facing terminal I/O: colorized status lines,
// tables and the line-based prompts the pipeline blocks on. Structured logs
// go through internal/logging instead.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes status output and reads interactive answers.
type Printer struct {
	out         io.Writer
	in          *bufio.Reader
	interactive bool

	infoColor    *color.Color
	successColor *color.Color
	warnColor    *color.Color
	errorColor   *color.Color
}

// New returns a Printer bound to stdout/stdin. Color is enabled only for
// interactive terminals and is suppressed by NO_COLOR.
func New() *Printer {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	colorize := interactive && os.Getenv("NO_COLOR") == ""
	return NewWithStreams(os.Stdout, os.Stdin, interactive, colorize)
}

// NewWithStreams wires explicit streams; tests pass buffers here.
func NewWithStreams(out io.Writer, in io.Reader, interactive, colorize bool) *Printer {
	p := &Printer{
		out:          out,
		in:           bufio.NewReader(in),
		interactive:  interactive,
		infoColor:    color.New(color.FgCyan),
		successColor: color.New(color.FgGreen),
		warnColor:    color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed),
	}
	if !colorize {
		for _, c := range []*color.Color{p.infoColor, p.successColor, p.warnColor, p.errorColor} {
			c.DisableColor()
		}
	}
	return p
}

// Interactive reports whether stdout is a terminal.
func (p *Printer) Interactive() bool { return p.interactive }

// Println writes a plain line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Printf writes plain formatted output.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Info(format string, args ...any) {
	p.line(p.infoColor, "INFO", format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.line(p.successColor, "SUCCESS", format, args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warnColor, "WARNING", format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.line(p.errorColor, "ERROR", format, args...)
}

func (p *Printer) line(c *color.Color, label, format string, args ...any) {
	c.Fprintf(p.out, "%s: %s\n", label, fmt.Sprintf(format, args...))
}

// Prompt writes label and returns the next input line, trimmed and
// lowercased. io.EOF is returned when input is exhausted.
func (p *Printer) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// Confirm asks a yes/no question until it gets a usable answer. Input
// exhaustion counts as "no".
func (p *Printer) Confirm(label string) (bool, error) {
	for {
		answer, err := p.Prompt(label + " (y/n): ")
		if err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
