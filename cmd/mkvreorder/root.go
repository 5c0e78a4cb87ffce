package main

import (
	"github.com/spf13/cobra"

	"mkvreorder/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var envFileFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "mkvreorder",
		Short:         "Reorder and re-flag MKV audio and subtitle tracks in bulk",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFile(envFileFlag); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Load environment variables from this file (default: ./.env if present)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
