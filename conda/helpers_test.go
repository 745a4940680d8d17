package conda

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, filename string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, []byte(content), 0755))
	return filename
}

// newCondaPrefix returns a temporary prefix with an (empty) bin/conda in it.
func newCondaPrefix(t *testing.T, name string) string {
	t.Helper()
	prefix := filepath.Join(t.TempDir(), name)
	writeFile(t, filepath.Join(prefix, "bin", "conda"), "")
	return prefix
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Debugf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

type runnerCall struct {
	name string
	args []string
}

// fakeRunner answers every call with out and err and records the calls.
type fakeRunner struct {
	out   string
	err   error
	calls []runnerCall
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, runnerCall{name: name, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.out), nil
}
