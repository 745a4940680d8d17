package conda

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conda-locate/domain"
)

func TestDecodeJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "object", data: []byte(`{"root_prefix": "/opt/conda", "n": 1}`)},
		{name: "empty object", data: []byte(`{}`)},
		{name: "not json", data: []byte(`not json`), wantErr: true},
		{name: "empty", data: []byte{}, wantErr: true},
		{name: "array", data: []byte(`[1, 2]`), wantErr: true},
		{name: "null", data: []byte(`null`), wantErr: true},
		{name: "string", data: []byte(`"x"`), wantErr: true},
		{name: "trailing data", data: []byte(`{} {}`), wantErr: true},
		{name: "invalid utf-8", data: []byte{'{', '"', 0xff, 0xfe, '"', ':', '1', '}'}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decodeJSONObject(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, res)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, res)
		})
	}
}

func TestExecute(t *testing.T) {
	prefix := newCondaPrefix(t, "env")
	runner := &fakeRunner{out: `{"root_prefix": "/opt/conda"}`}
	r := NewResolver(domain.Environment{Prefix: prefix}, WithRunner(runner), WithLogger(&recordingLogger{}))

	res, err := r.execute("info", "--json")
	require.NoError(t, err)
	assert.Equal(t, "/opt/conda", res["root_prefix"])

	require.Len(t, runner.calls, 1)
	assert.Equal(t, filepath.Join(prefix, "bin", "conda"), runner.calls[0].name)
	assert.Equal(t, []string{"info", "--json"}, runner.calls[0].args)
}

func TestExecuteFailures(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
	}{
		{name: "non-zero exit", runner: &fakeRunner{err: errors.New("exit status 1")}},
		{name: "not json", runner: &fakeRunner{out: "not json"}},
		{name: "invalid utf-8", runner: &fakeRunner{out: "\xff\xfe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := newCondaPrefix(t, "env")
			r := NewResolver(domain.Environment{Prefix: prefix}, WithRunner(tt.runner), WithLogger(&recordingLogger{}))

			_, err := r.execute("config", "--show", "--json")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrExecutionFailed))

			var execErr *ExecutionError
			require.True(t, errors.As(err, &execErr))
			assert.Equal(t, []string{"config", "--show", "--json"}, execErr.Args)
		})
	}
}

func TestExecuteWithoutExecutable(t *testing.T) {
	runner := &fakeRunner{out: `{}`}
	r := NewResolver(domain.Environment{Prefix: t.TempDir()}, WithRunner(runner), WithLogger(&recordingLogger{}))

	_, err := r.execute("info", "--json")
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.True(t, errors.Is(err, ErrCondaNotFound))
	assert.Empty(t, runner.calls)
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as conda")
	}

	prefix := t.TempDir()
	writeFile(t, filepath.Join(prefix, "bin", "conda"), `#!/bin/sh
case "$1" in
info)
	echo '{"root_prefix": "/opt/custom-env-root"}'
	;;
*)
	echo "unknown command $1" >&2
	exit 1
	;;
esac
`)
	r := NewResolver(domain.Environment{Prefix: prefix}, WithLogger(&recordingLogger{}))

	res, err := r.execute("info", "--json")
	require.NoError(t, err)
	assert.Equal(t, "/opt/custom-env-root", res["root_prefix"])

	_, err = r.execute("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.Contains(t, err.Error(), "unknown command bogus")
}
