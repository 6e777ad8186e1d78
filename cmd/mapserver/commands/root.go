// Package commands implements the mapserver command line.
package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mapselect/mapserver/internal/config"
)

var (
	logger = log.Default()
	cfg    config.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:          "mapserver",
		Short:        "Map selection server: zone store, frontend and map images",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFile(logger)
			loaded, err := config.FromEnv(logger)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.AddCommand(serveCmd(), importCmd())
	return root.Execute()
}
