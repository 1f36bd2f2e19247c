package cli

import (
	"fmt"

	"github.com/ether/wsclient-go/lib/server"
	"github.com/ether/wsclient-go/lib/settings"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd builds the `serve` command. Running the root command without a
// subcommand does the same.
func NewServeCmd(logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin API",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			server.InitServer(logger)
		},
	}
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version := settings.GitVersion()
			if version == "" {
				version = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// NewConfigCmd builds the `config` command and its subcommands. Every subcommand
// reads the settings first so values from settings.json, .env and the environment show up.
func NewConfigCmd(logger *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	loadSettings := func(cmd *cobra.Command, args []string) error {
		_, err := settings.InitSettings(logger)
		return err
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "show",
		Short:   "Show every config key with its current and default value",
		Args:    cobra.NoArgs,
		PreRunE: loadSettings,
		Run: func(cmd *cobra.Command, args []string) {
			settings.ConfigShow(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "dump",
		Short:   "Print the effective configuration as JSON",
		Args:    cobra.NoArgs,
		PreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return settings.ConfigDump(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the environment variable of every config key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			settings.ConfigEnv(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "get <key>",
		Short:   "Print the current value of one config key",
		Args:    cobra.ExactArgs(1),
		PreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return settings.ConfigGet(cmd.OutOrStdout(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Print a settings.json holding the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return settings.ConfigInit(cmd.OutOrStdout())
		},
	})
	return cmd
}

// NewRootCmd builds the top-level `wsclient` command.
func NewRootCmd(logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "wsclient",
		Short:         "wsclient, remote web service definitions and invocation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			server.InitServer(logger)
		},
	}
	root.AddCommand(NewServeCmd(logger))
	root.AddCommand(NewConfigCmd(logger))
	root.AddCommand(NewVersionCmd())
	return root
}
