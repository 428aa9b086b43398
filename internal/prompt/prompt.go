// Package prompt reads the master passphrase without echoing it.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input closes before a line is read.
var ErrNoInput = errors.New("no passphrase entered")

// Prompter asks for a secret.
type Prompter interface {
	Secret(ctx context.Context, label string) (string, error)
}

// Terminal prompts on a file descriptor. When the input is a terminal echo
// is disabled; otherwise a single line is read, which lets scripts pipe the
// passphrase in.
type Terminal struct {
	in  *os.File
	out io.Writer
}

// NewTerminal creates a Terminal reading from in and writing the label to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Secret shows label and returns what the user typed, without the trailing
// newline. When ctx is cancelled first, the terminal state is restored and
// ctx.Err() is returned.
func (t *Terminal) Secret(ctx context.Context, label string) (string, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return await(ctx, func() (string, error) { return ReadLine(t.in) }, nil)
	}

	state, err := term.GetState(fd)
	if err != nil {
		return "", fmt.Errorf("reading terminal state: %w", err)
	}

	fmt.Fprint(t.out, label)
	defer fmt.Fprintln(t.out)

	return await(ctx, func() (string, error) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(b), nil
	}, func() { _ = term.Restore(fd, state) })
}

// await runs read in the background so a cancelled ctx (SIGINT while the
// read blocks) ends the prompt. The abandoned read dies with the process.
func await(ctx context.Context, read func() (string, error), onCancel func()) (string, error) {
	type result struct {
		secret string
		err    error
	}

	done := make(chan result, 1)
	go func() {
		secret, err := read()
		done <- result{secret, err}
	}()

	select {
	case r := <-done:
		return r.secret, r.err
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		return "", ctx.Err()
	}
}

// ReadLine returns the first line of r with the line ending removed.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}
