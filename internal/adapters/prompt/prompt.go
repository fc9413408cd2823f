// Package prompt asks the operator questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrNoInput is returned when input ends before an answer is given.
var ErrNoInput = errors.New("no input available")

// Terminal reads answers line by line from an input stream.
type Terminal struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Terminal reading from in and writing questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		raw: in,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Input returns the stream a child process should read from. Input read
// ahead of the last answer stays in the returned reader. With nothing
// buffered it is the original stream, so a terminal stays a terminal.
func (t *Terminal) Input() io.Reader {
	if t.in.Buffered() == 0 {
		return t.raw
	}
	return t.in
}

// Confirm asks a yes/no question and repeats it until the answer is y, yes,
// n, or no in any letter case.
func (t *Terminal) Confirm(question string) (bool, error) {
	for {
		answer, err := t.ask(question + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		_, _ = fmt.Fprintln(t.out, "Please answer yes or no.")
	}
}

// Line asks for a single line of text. Surrounding whitespace is removed.
func (t *Terminal) Line(question string) (string, error) {
	return t.ask(question + ": ")
}

func (t *Terminal) ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				return strings.TrimSpace(line), nil
			}
			_, _ = fmt.Fprintln(t.out)
			return "", ErrNoInput
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ensure Terminal implements ports.Prompter.
var _ ports.Prompter = (*Terminal)(nil)
