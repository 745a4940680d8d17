package conda

import (
	"os"
	"path/filepath"
	"runtime"

	"conda-locate/domain"
)

// DetectEnvironment works out the environment of the running process.
// The install prefix is prefixOverride if set, else $CONDA_PREFIX, else the
// environment whose bin (or Scripts) directory holds this binary.
// condaExe is passed through as the executable override.
func DetectEnvironment(prefixOverride string, condaExe string) domain.Environment {
	return detectEnvironment(prefixOverride, condaExe, runtime.GOOS, os.LookupEnv, os.Executable)
}

func detectEnvironment(prefixOverride string, condaExe string, goos string,
	lookupEnv func(string) (string, bool), executable func() (string, error)) domain.Environment {
	env := domain.Environment{
		Prefix:   prefixOverride,
		Windows:  goos == "windows",
		CondaExe: condaExe,
	}

	if env.Prefix == "" {
		if prefix, ok := lookupEnv("CONDA_PREFIX"); ok && prefix != "" {
			env.Prefix = prefix
		}
	}

	if env.Prefix == "" {
		if exe, err := executable(); err == nil {
			exeDir := filepath.Dir(exe)
			if filepath.Base(exeDir) == binDir(env.Windows) {
				env.Prefix = filepath.Dir(exeDir)
			}
		}
	}

	if env.Prefix != "" {
		env.Prefix = filepath.Clean(env.Prefix)
	}

	return env
}
