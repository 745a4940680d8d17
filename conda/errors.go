package conda

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned by a probe or strategy that does not apply to this host.
	// It is an expected outcome and only moves resolution on to the next strategy.
	ErrUnavailable = errors.New("not available")

	// ErrCondaNotFound is matched by every *NotFoundError.
	ErrCondaNotFound = errors.New("conda executable not found")

	// ErrExecutionFailed is matched by every *ExecutionError.
	ErrExecutionFailed = errors.New("conda execution failed")
)

// NotFoundError reports the executable path that was looked for.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to find conda executable: %q", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCondaNotFound
}

// ExecutionError is any failure to get usable JSON out of a conda invocation:
// a missing executable, a launch failure, a non-zero exit status or bad output.
type ExecutionError struct {
	Args []string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("could not run conda with args %v: %s", e.Args, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecutionFailed
}
