package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestSetAppConfigFillsDefaults(t *testing.T) {
	cfg := AppConfig{
		Conda:  CondaConfig{Prefix: "/opt/conda/envs/x"},
		Output: OutputConfig{LockMaxWaitSeconds: 5},
	}
	require.NoError(t, SetAppConfig(&cfg))

	got := GetAppConfig()
	assert.Equal(t, "/opt/conda/envs/x", got.Conda.Prefix)
	assert.Equal(t, 5, got.Output.LockMaxWaitSeconds)
	assert.Equal(t, 250, got.Output.LockRetryIntervalMillis)
}

func TestReadConfigFromFile(t *testing.T) {
	tests := map[string]string{
		"config.json": `{
  "conda": {"prefix": "/opt/conda/envs/x", "exe": "/opt/conda/bin/conda", "condarc_files": ["/etc/conda/.condarc"]},
  "log": {"verbose": true},
  "output": {"file": "/tmp/out.json"}
}`,
		"config.yaml": `
conda:
  prefix: /opt/conda/envs/x
  exe: /opt/conda/bin/conda
  condarc_files:
    - /etc/conda/.condarc
log:
  verbose: true
output:
  file: /tmp/out.json
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, ReadConfigFromFile(writeConfig(t, name, content)))

			cfg := GetAppConfig()
			assert.Equal(t, "/opt/conda/envs/x", cfg.Conda.Prefix)
			assert.Equal(t, "/opt/conda/bin/conda", cfg.Conda.Exe)
			assert.Equal(t, []string{"/etc/conda/.condarc"}, cfg.Conda.CondarcFiles)
			assert.True(t, cfg.Log.Verbose)
			assert.Equal(t, "/tmp/out.json", cfg.Output.File)
			assert.Equal(t, 30, cfg.Output.LockMaxWaitSeconds)
			assert.Equal(t, 250, cfg.Output.LockRetryIntervalMillis)
		})
	}
}

func TestReadConfigFromEmptyYAMLFile(t *testing.T) {
	require.NoError(t, ReadConfigFromFile(writeConfig(t, "empty.yml", "")))
	assert.Equal(t, DefaultAppConfig(), GetAppConfig())
}

func TestReadConfigFromFileErrors(t *testing.T) {
	assert.Error(t, ReadConfigFromFile(filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, ReadConfigFromFile(writeConfig(t, "bad.json", "{not json")))
	assert.Error(t, ReadConfigFromFile(writeConfig(t, "bad.yaml", "conda: [unclosed")))
}

func TestDumpConfigAsPrettyJson(t *testing.T) {
	cfg := AppConfig{Conda: CondaConfig{Prefix: "/opt/conda"}}
	require.NoError(t, SetAppConfig(&cfg))

	data, err := DumpConfigAsPrettyJson()
	require.NoError(t, err)

	var dumped AppConfig
	require.NoError(t, json.Unmarshal(data, &dumped))
	assert.Equal(t, GetAppConfig(), dumped)

	filename := writeConfig(t, "dump.json", string(data))
	require.NoError(t, ReadConfigFromFile(filename))
	assert.Equal(t, "/opt/conda", GetAppConfig().Conda.Prefix)
}
