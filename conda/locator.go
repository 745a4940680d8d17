package conda

import (
	"os"
	"path/filepath"

	"conda-locate/domain"
)

const (
	envsDirName = "envs"

	unixBinDir    = "bin"
	windowsBinDir = "Scripts"
)

func binDir(windows bool) string {
	if windows {
		return windowsBinDir
	}
	return unixBinDir
}

// LocateExecutable returns the conda executable for env.
//
// On Windows <prefix>\Scripts\conda.exe is preferred and <prefix>\Scripts\conda.bat
// is used when the .exe does not exist. Elsewhere it is <prefix>/bin/conda.
// An explicit env.CondaExe replaces the derived path. A *NotFoundError carrying
// the attempted path is returned when the candidate is not on disk.
func LocateExecutable(env domain.Environment) (string, error) {
	command := env.CondaExe

	if command == "" {
		if env.Prefix == "" {
			return "", &NotFoundError{Path: ""}
		}

		dir := filepath.Join(env.Prefix, binDir(env.Windows))
		command = filepath.Join(dir, "conda")

		if env.Windows {
			command = filepath.Join(dir, "conda.exe")
			if !fileExists(command) {
				command = filepath.Join(dir, "conda.bat")
			}
		}
	}

	if !fileExists(command) {
		return "", &NotFoundError{Path: command}
	}

	return command, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}
