package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
)

// clearScreen moves the cursor home and erases the display
const clearScreen = "\033[H\033[2J"

// DefaultQuiet is how long output must stay silent, with nothing scheduled,
// before the prompt comes back
const DefaultQuiet = 50 * time.Millisecond

// REPL drives one shell session from a line-oriented reader
type REPL struct {
	session *shell.Session
	out     io.Writer
	quiet   time.Duration
	last    shell.Status

	user   *color.Color
	path   *color.Color
	errors *color.Color
}

// NewREPL creates a REPL writing to out. Colors follow color.NoColor.
func NewREPL(session *shell.Session, out io.Writer) *REPL {
	return &REPL{
		session: session,
		out:     out,
		quiet:   DefaultQuiet,
		user:    color.New(color.FgGreen, color.Bold),
		path:    color.New(color.FgBlue, color.Bold),
		errors:  color.New(color.FgRed),
	}
}

// WithQuiet sets the silence window used to detect the end of delayed output
func (r *REPL) WithQuiet(d time.Duration) *REPL {
	if d > 0 {
		r.quiet = d
	}
	return r
}

// WithoutColor disables colored output for this REPL only
func (r *REPL) WithoutColor() *REPL {
	r.user.DisableColor()
	r.path.DisableColor()
	r.errors.DisableColor()
	return r
}

// Run prints the current log, then reads lines from in until EOF, exit,
// a closed session or ctx is done.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	changes, cancel := r.session.Log().Watch()
	defer cancel()

	cursor := r.session.Log().Cursor(0)
	for _, line := range cursor.Next() {
		r.print(line, shell.StatusOK)
	}

	done := make(chan struct{})
	defer close(done)

	input := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case input <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		r.prompt()

		var text string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case err := <-readErr:
			fmt.Fprintln(r.out)
			return err
		case text = <-input:
		}

		if r.execute(ctx, changes, cursor, text) {
			return nil
		}
	}
}

// RunLines executes each line in order, printing output as it arrives, and
// returns the status of the last one.
func (r *REPL) RunLines(ctx context.Context, texts ...string) shell.Status {
	changes, cancel := r.session.Log().Watch()
	defer cancel()
	cursor := r.session.Log().Cursor(r.session.Log().LastSeq())

	status := shell.StatusEmpty
	for _, text := range texts {
		stop := r.execute(ctx, changes, cursor, text)
		status = r.last
		if stop {
			break
		}
	}
	return status
}

// execute runs one line and reports whether the REPL should stop
func (r *REPL) execute(ctx context.Context, changes <-chan struct{}, cursor *shell.Cursor, text string) bool {
	res := r.session.Execute(text)
	r.last = res.Status
	if res.Status == shell.StatusClosed {
		return true
	}
	r.drain(ctx, changes, cursor, res.Status)
	return res.Exited
}

// drain prints new log lines until the log has been quiet for r.quiet and
// nothing is scheduled. Echoed input is skipped since the terminal already
// shows what was typed.
func (r *REPL) drain(ctx context.Context, changes <-chan struct{}, cursor *shell.Cursor, status shell.Status) {
	r.flush(cursor, status)

	timer := time.NewTimer(r.quiet)
	defer timer.Stop()

	for {
		select {
		case _, ok := <-changes:
			r.flush(cursor, status)
			if !ok {
				return
			}
			timer.Reset(r.quiet)
		case <-timer.C:
			if r.session.Pending() == 0 {
				r.flush(cursor, status)
				return
			}
			timer.Reset(r.quiet)
		case <-ctx.Done():
			return
		}
	}
}

func (r *REPL) flush(cursor *shell.Cursor, status shell.Status) {
	for _, line := range cursor.Next() {
		r.print(line, status)
	}
}

func (r *REPL) print(line shell.Line, status shell.Status) {
	switch line.Kind {
	case shell.LineClear:
		fmt.Fprint(r.out, clearScreen)
	case shell.LineOutput:
		if status == shell.StatusError || status == shell.StatusUnknown {
			r.errors.Fprintln(r.out, line.Text)
			return
		}
		fmt.Fprintln(r.out, line.Text)
	}
}

func (r *REPL) prompt() {
	env := r.session.Env()
	r.user.Fprintf(r.out, "%s@%s", env.User, env.Hostname)
	fmt.Fprint(r.out, ":")
	r.path.Fprint(r.out, r.session.DisplayPath())
	fmt.Fprint(r.out, " $ ")
}
