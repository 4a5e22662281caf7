package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Console reads answers line by line and writes coloured messages.
// It satisfies budget.Prompter.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	warn    *color.Color
	success *color.Color
	heading *color.Color
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		warn:    color.New(color.FgRed),
		success: color.New(color.FgGreen),
		heading: color.New(color.FgCyan, color.Bold),
	}
}

// Prompt prints label and returns the next line without its line ending.
// A final line without newline is returned normally; io.EOF follows it.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		fmt.Fprintln(c.out)
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Warn prints an error or warning line in red.
func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Success(format string, args ...any) {
	c.success.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Heading(format string, args ...any) {
	c.heading.Fprintf(c.out, format+"\n", args...)
}
