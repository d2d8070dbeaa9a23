package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ihsearch/internal/di"
	"ihsearch/internal/structures"
)

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:           "ihsearch",
		Short:         "Influencer search HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "path to the YAML config file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "also log to the console")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
