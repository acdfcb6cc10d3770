// Package picker abstracts the interactive prompts the pipeline needs so
// flows can be driven by a terminal in production and by a script in
// tests.
package picker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Picker is the operator-interaction capability: select items from a
// list, confirm/cancel a step, or supply a free-form line.
type Picker interface {
	// Select shows options and returns the chosen subset, in option
	// order. An empty result means the operator declined.
	Select(prompt string, options []string) ([]string, error)
	// Confirm asks a yes/no question. Enter defaults to yes.
	Confirm(prompt string) (bool, error)
	// Line asks for one line of free-form input, trimmed.
	Line(prompt string) (string, error)
}

// Terminal reads answers from an interactive terminal.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminal wires a picker to the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out, reader: bufio.NewReader(in)}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Select prints a numbered list and accepts comma-separated indices
// (1-based). Empty input selects nothing.
func (t *Terminal) Select(prompt string, options []string) ([]string, error) {
	fmt.Fprintln(t.Out, prompt)
	for i, opt := range options {
		fmt.Fprintf(t.Out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(t.Out, "> ")

	line, err := t.readLine()
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}
	if line == "" {
		return nil, nil
	}

	var selected []string
	seen := make(map[int]bool)
	for _, field := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 || n > len(options) {
			return nil, fmt.Errorf("invalid selection %q", strings.TrimSpace(field))
		}
		if !seen[n] {
			seen[n] = true
		}
	}
	for i := range options {
		if seen[i+1] {
			selected = append(selected, options[i])
		}
	}
	return selected, nil
}

// Confirm asks the question; Enter or "y" confirms, "n" declines.
func (t *Terminal) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(t.Out, "%s [Y/n] ", prompt)
	line, err := t.readLine()
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return line == "" || strings.EqualFold(line, "y"), nil
}

// Line prompts for one line of input.
func (t *Terminal) Line(prompt string) (string, error) {
	fmt.Fprintf(t.Out, "%s ", prompt)
	line, err := t.readLine()
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}
