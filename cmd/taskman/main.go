// Package main is the taskman command: an interactive task tracker with
// background reminders, idle hints and autosave.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/phrazzld/taskman/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "taskman",
		Short:        "Track tasks and deadlines from the terminal",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{
				ConfigFile: configFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(cfg, afero.NewOsFs(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.run(ctx)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file (default ./taskman.yaml if present)")
	cmd.Flags().String("tasks-file", "", "JSON file tasks are loaded from and saved to")
	cmd.Flags().String("log-file", "", "file the activity log is appended to")
	cmd.Flags().String("log-level", "", "diagnostic log level: debug, info, warn or error")

	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskman version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskman %s\n", version)
		},
	}
}
