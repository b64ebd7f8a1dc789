package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/appshell/internal/bootstrap"
)

// runShell is replaced in tests.
var runShell = bootstrap.Run

type rootFlags struct {
	config string
	debug  bool
	dev    bool
	theme  string
	path   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "appshell",
		Short:         "A terminal application shell with routing, toasts and themes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "Config file merged over the standard locations")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Log at debug level")
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "Show error details by default")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "Default theme: dark, light or system")
	cmd.Flags().StringVar(&flags.path, "path", "", "Location to open instead of the saved one")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, flags *rootFlags) error {
	err := runShell(ctx, bootstrap.Options{
		ConfigPath: flags.config,
		Debug:      flags.debug,
		Dev:        flags.dev,
		Theme:      flags.theme,
		StartAt:    flags.path,
	})
	if errors.Is(err, bootstrap.ErrAlreadyMounted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "appshell is already running in this terminal")
		return nil
	}
	return err
}
