package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"conda-locate/conda"
	"conda-locate/config"
	"conda-locate/helpers"
)

var errNotResolved = errors.New("could not be determined")

type cli struct {
	configFile string
	prefix     string
	condaExe   string
	output     string
	logFile    string
	verbose    bool

	// resolverOptions are appended to the options built from the config, for tests.
	resolverOptions []conda.Option
}

// NewRootCommand builds the conda-locate command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&cli{})
}

func newRootCommand(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conda-locate",
		Short: "Locate the conda installation root and anaconda client configuration",
		Long: `conda-locate finds where the local conda installation is rooted and which
anaconda upload sites conda is configured with, without needing to know
which conda version or installation layout is present.`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (JSON, or YAML with a .yaml/.yml extension)")
	flags.StringVar(&c.prefix, "prefix", "", "install prefix of the conda environment (default: $CONDA_PREFIX)")
	flags.StringVar(&c.condaExe, "conda-exe", "", "conda executable to run instead of the one under the prefix")
	flags.StringVarP(&c.output, "output", "o", "", "write the result to this file instead of stdout")
	flags.StringVar(&c.logFile, "log-file", "", "also write log messages to this file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log every resolution step")

	rootCmd.AddCommand(
		newRootPathCommand(c),
		newClientConfigCommand(c),
		newExeCommand(c),
		newDumpConfigCommand(c),
		newVersionCommand(c),
	)

	return rootCmd
}

// setup loads the config file, applies flag overrides on top of it and starts the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultAppConfig()
	if err := config.SetAppConfig(&cfg); err != nil {
		return err
	}

	if c.configFile != "" {
		if err := config.ReadConfigFromFile(c.configFile); err != nil {
			return err
		}
		cfg = config.GetAppConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.Conda.Prefix = c.prefix
	}
	if flags.Changed("conda-exe") {
		cfg.Conda.Exe = c.condaExe
	}
	if flags.Changed("output") {
		cfg.Output.File = c.output
	}
	if flags.Changed("log-file") {
		cfg.Log.File = c.logFile
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbose = c.verbose
	}
	if err := config.SetAppConfig(&cfg); err != nil {
		return err
	}

	// A failed run skips teardown, so drop any logger left behind by it.
	if err := helpers.CloseAppLogger(); err != nil {
		return err
	}
	return helpers.InitAppLogger(cfg.Log.File, cfg.Log.Verbose)
}

func (c *cli) teardown(cmd *cobra.Command, args []string) error {
	return helpers.CloseAppLogger()
}

func (c *cli) resolver() *conda.Resolver {
	cfg := config.GetAppConfig()
	env := conda.DetectEnvironment(cfg.Conda.Prefix, cfg.Conda.Exe)
	helpers.GetAppLogger().Debugf("Environment: prefix=%q windows=%t conda_exe=%q", env.Prefix, env.Windows, env.CondaExe)

	var opts []conda.Option
	if len(cfg.Conda.CondarcFiles) > 0 {
		opts = append(opts, conda.WithConfigProbe(conda.NewCondarcProbe(cfg.Conda.CondarcFiles)))
	}
	opts = append(opts, c.resolverOptions...)

	return conda.NewResolver(env, opts...)
}

// emit writes data followed by a newline to the configured output file, or to w.
func emit(w io.Writer, data []byte) error {
	data = append(data, '\n')

	cfg := config.GetAppConfig().Output
	if cfg.File == "" {
		_, err := w.Write(data)
		return err
	}

	out := helpers.NewOutputFile(cfg.File)
	if cfg.LockFilename != "" {
		out.LockFilename = cfg.LockFilename
	}
	out.LockMaxWait = time.Duration(cfg.LockMaxWaitSeconds) * time.Second
	out.LockRetryInterval = time.Duration(cfg.LockRetryIntervalMillis) * time.Millisecond

	return out.WriteFrom(bytes.NewReader(data))
}

func emitJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal output as JSON: %w", err)
	}
	return emit(w, data)
}
