package conda

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"unicode/utf8"
)

// Runner runs an executable and returns its standard output.
// A non-zero exit status must be reported as an error.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(name string, args ...string) ([]byte, error)

func (f RunnerFunc) Run(name string, args ...string) ([]byte, error) {
	return f(name, args...)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, err
	}
	return out, nil
}

// execute runs conda with args and decodes its output as a JSON object.
// Every failure, including a missing executable, is an *ExecutionError.
func (r *Resolver) execute(args ...string) (map[string]interface{}, error) {
	command, err := LocateExecutable(r.env)
	if err != nil {
		return nil, &ExecutionError{Args: args, Err: err}
	}

	r.logger.Debugf("Invoking conda %s with args: %v", command, args)
	out, err := r.runner.Run(command, args...)
	if err != nil {
		return nil, &ExecutionError{Args: args, Err: err}
	}

	res, err := decodeJSONObject(out)
	if err != nil {
		return nil, &ExecutionError{Args: args, Err: err}
	}

	return res, nil
}

func decodeJSONObject(data []byte) (map[string]interface{}, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("output is not valid UTF-8")
	}

	var res map[string]interface{}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("could not parse output as JSON: %w", err)
	}
	if res == nil {
		return nil, errors.New("output is not a JSON object")
	}

	return res, nil
}
