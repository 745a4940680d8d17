package conda

import (
	"errors"
	"fmt"
	"path/filepath"
)

var condaInfoArgs = []string{"info", "--json"}

// ResolveRoot returns the root of the conda installation. In order:
//
//   - the root probe, e.g. conda's activation variables
//   - the grandparent of the prefix when the prefix lives in an "envs" directory,
//     as for environments made with `conda create -n <name>`
//   - root_prefix from `conda info --json`, for environments made with `conda create -p <path>`
//
// ok is false when none of them works.
func (r *Resolver) ResolveRoot() (root string, ok bool) {
	return firstSuccess(r.logger,
		strategy[string]{name: "root probe", run: r.rootProbe.ProbeRoot},
		strategy[string]{name: "envs directory layout", run: func() (string, error) {
			return rootFromEnvsDir(r.env.Prefix)
		}},
		strategy[string]{name: "conda info", run: r.rootFromCondaInfo},
	)
}

func rootFromEnvsDir(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("no install prefix: %w", ErrUnavailable)
	}

	envsDir := filepath.Dir(filepath.Clean(prefix))
	if filepath.Base(envsDir) != envsDirName {
		return "", fmt.Errorf("prefix %s is not in an %s directory: %w", prefix, envsDirName, ErrUnavailable)
	}

	return filepath.Dir(envsDir), nil
}

func (r *Resolver) rootFromCondaInfo() (string, error) {
	info, err := r.execute(condaInfoArgs...)
	if err != nil {
		return "", err
	}

	value, ok := info["root_prefix"]
	if !ok {
		return "", &ExecutionError{Args: condaInfoArgs, Err: errors.New("output has no root_prefix")}
	}
	root, ok := value.(string)
	if !ok || root == "" {
		return "", &ExecutionError{Args: condaInfoArgs, Err: fmt.Errorf("invalid root_prefix %v", value)}
	}

	return root, nil
}
