package helpers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio"
)

// OutputFile writes command results to a file on disk.
// Writers targeting the same file are serialized with an advisory lock on
// LockFilename (relative to the output file's directory) and readers never
// observe a half-written file.
type OutputFile struct {
	Filename     string
	LockFilename string

	LockMaxWait       time.Duration
	LockRetryInterval time.Duration
}

// NewOutputFile returns an OutputFile for filename using "<basename>.lock" as its lock file.
func NewOutputFile(filename string) *OutputFile {
	return &OutputFile{
		Filename:          filename,
		LockFilename:      "." + filepath.Base(filename) + ".lock",
		LockMaxWait:       30 * time.Second,
		LockRetryInterval: 250 * time.Millisecond,
	}
}

// WriteFrom replaces the contents of the output file with everything read from r.
func (o *OutputFile) WriteFrom(r io.Reader) error {
	if o == nil {
		return fmt.Errorf("called on a nil struct!")
	}
	logger := GetAppLogger()

	parentDir := filepath.Dir(o.Filename)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("could not create dir %s: %w", parentDir, err)
	}

	if o.LockFilename != "" {
		lockFilename := filepath.Join(parentDir, o.LockFilename)
		filelock := flock.New(lockFilename)

		lockCtx, cancel := context.WithTimeout(context.Background(), o.LockMaxWait)
		defer cancel()
		locked, err := filelock.TryLockContext(lockCtx, o.LockRetryInterval)
		if err != nil {
			return fmt.Errorf("could not acquire lock on lockfile %s for writing %s: %w",
				lockFilename, o.Filename, err)
		}
		if !locked {
			return fmt.Errorf("could not acquire lock on lockfile %s for writing %s",
				lockFilename, o.Filename)
		}
		defer filelock.Unlock()
	}

	pendingFile, err := renameio.TempFile("", o.Filename)
	if err != nil {
		return fmt.Errorf("could not open temp file for %s: %w", o.Filename, err)
	}
	//nolint:errcheck
	defer pendingFile.Cleanup()

	if _, err = io.Copy(pendingFile, r); err != nil {
		return fmt.Errorf("could not write to temp file for %s: %w", o.Filename, err)
	}

	if err = pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("could not replace file %s: %w", o.Filename, err)
	}

	logger.Debugf("Written output file %s", o.Filename)
	return nil
}
