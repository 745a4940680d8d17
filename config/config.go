package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Conda  CondaConfig  `json:"conda" yaml:"conda"`
	Log    LogConfig    `json:"log" yaml:"log"`
	Output OutputConfig `json:"output" yaml:"output"`
}

// CondaConfig overrides what is otherwise detected from the running environment.
type CondaConfig struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Exe    string `json:"exe" yaml:"exe"`

	// CondarcFiles replaces the default .condarc search path when non-empty.
	CondarcFiles []string `json:"condarc_files" yaml:"condarc_files"`
}

type LogConfig struct {
	File    string `json:"file" yaml:"file"`
	Verbose bool   `json:"verbose" yaml:"verbose"`
}

// OutputConfig controls writing results to a file instead of stdout.
type OutputConfig struct {
	File                    string `json:"file" yaml:"file"`
	LockFilename            string `json:"lock_filename" yaml:"lock_filename"`
	LockMaxWaitSeconds      int    `json:"lock_max_wait_seconds" yaml:"lock_max_wait_seconds"`
	LockRetryIntervalMillis int    `json:"lock_retry_interval_millis" yaml:"lock_retry_interval_millis"`
}

// DefaultAppConfig returns the built-in configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Output: OutputConfig{
			LockMaxWaitSeconds:      30,
			LockRetryIntervalMillis: 250,
		},
	}
}

var appCfg = DefaultAppConfig()

// SetAppConfig installs cfg as the application config.
// Fields left unset in cfg are filled in from the defaults.
func SetAppConfig(cfg *AppConfig) error {
	if err := mergo.Merge(cfg, DefaultAppConfig()); err != nil {
		return fmt.Errorf("could not merge config with defaults: %w", err)
	}
	appCfg = *cfg
	return nil
}

func GetAppConfig() AppConfig {
	return appCfg
}

// ReadConfigFromFile loads a JSON or YAML (by .yaml/.yml extension) config file
// and installs it as the application config.
func ReadConfigFromFile(filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}

	configFile, err := os.OpenFile(filename, os.O_RDONLY, 0755)
	if err != nil {
		return fmt.Errorf("could not open file %s for reading: %w", filename, err)
	}
	defer configFile.Close()

	var cfgData AppConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(configFile).Decode(&cfgData)
		if err == io.EOF {
			err = nil // empty document
		}
	default:
		err = json.NewDecoder(configFile).Decode(&cfgData)
	}
	if err != nil {
		return fmt.Errorf("could not parse file %s for config data: %w", filename, err)
	}

	// Merge configuration
	return SetAppConfig(&cfgData)
}

// DumpConfigAsPrettyJson returns the application config as indented JSON.
func DumpConfigAsPrettyJson() ([]byte, error) {
	return json.MarshalIndent(appCfg, "", "  ")
}
