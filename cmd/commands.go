package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"conda-locate/config"
	"conda-locate/helpers"
	"conda-locate/utils"
)

func newRootPathCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the root of the conda installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, ok := c.resolver().ResolveRoot()
			if !ok {
				return helpers.GetAppLogger().ErrorPrintf("conda root %w", errNotResolved)
			}
			return emit(cmd.OutOrStdout(), []byte(root))
		},
	}
}

func newClientConfigCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the anaconda client configuration known to conda as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := c.resolver().ResolveClientConfig()
			if !ok {
				return helpers.GetAppLogger().ErrorPrintf("anaconda client config %w", errNotResolved)
			}
			return emitJSON(cmd.OutOrStdout(), cfg)
		},
	}
}

func newExeCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "exe",
		Short: "Print the conda executable that would be run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := c.resolver().Executable()
			if err != nil {
				return helpers.GetAppLogger().ErrorPrintf("%w", err)
			}
			return emit(cmd.OutOrStdout(), []byte(exe))
		},
	}
}

func newDumpConfigCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-config",
		Short: "Print the effective conda-locate configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.DumpConfigAsPrettyJson()
			if err != nil {
				return fmt.Errorf("could not marshal application config as JSON: %w", err)
			}
			return emit(cmd.OutOrStdout(), data)
		},
	}
}

func newVersionCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitJSON(cmd.OutOrStdout(), utils.GetVersionDetails())
		},
	}
}
