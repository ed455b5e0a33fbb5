package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	// Prompt is printed before each command line.
	Prompt = "(cli) $ "

	intro = "Welcome to Pandora mqtt prompt shell.\tType help or ? to list commands."
)

// Shell is the interactive read-eval-print loop around a Session.
type Shell struct {
	session *Session
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
}

// NewShell creates a Shell reading commands from in.
//
// out should be the session's Printer so prompts and command output do not
// tear lines of frames printed from transport goroutines.
func NewShell(s *Session, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		session: s,
		in:      in,
		out:     out,
		errOut:  errOut,
	}
}

// Run reads and executes lines until exit, end of input, or ctx is done.
//
// Command errors are printed and the loop continues. Reading happens on a
// separate goroutine so cancellation is not held up by a blocked read;
// that goroutine ends when the input is closed.
//
// Returns:
//   - error: Only for a failure reading input
func (sh *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(sh.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(sh.out, intro)

	for {
		fmt.Fprint(sh.out, Prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(sh.out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				return nil
			}

			res := sh.session.Execute(line)
			if res.Output != "" {
				fmt.Fprintln(sh.out, strings.TrimRight(res.Output, "\n"))
			}
			if res.Err != nil {
				fmt.Fprintln(sh.errOut, res.Err)
			}
			if res.Exit {
				return nil
			}
		}
	}
}
