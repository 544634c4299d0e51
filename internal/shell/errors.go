package shell

import (
	"errors"
	"fmt"

	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

// CommandError is a failure of one command on one argument.
// It renders as "<cmd>: <arg>: <reason>".
type CommandError struct {
	Command string
	Arg     string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Command, e.Arg, Reason(e.Err))
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports a missing or malformed argument
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

func usage(text string) error {
	return &UsageError{Usage: text}
}

func fail(cmd, arg string, err error) error {
	return &CommandError{Command: cmd, Arg: arg, Err: err}
}

// Reason maps filesystem errors to the messages a shell prints
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, vfs.ErrNotFound):
		return "No such file or directory"
	case errors.Is(err, vfs.ErrAlreadyExists):
		return "File exists"
	case errors.Is(err, vfs.ErrIsDirectory):
		return "Is a directory"
	case errors.Is(err, vfs.ErrNotDirectory):
		return "Not a directory"
	case errors.Is(err, vfs.ErrInvalidName):
		return "Invalid argument"
	default:
		return err.Error()
	}
}
