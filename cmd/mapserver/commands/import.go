package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapselect/mapserver/internal/app"
	"github.com/mapselect/mapserver/internal/clock"
	"github.com/mapselect/mapserver/internal/zoneimport"
	"github.com/mapselect/mapserver/internal/zonestore"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Check a CSV or DBF seed file without starting the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.NewZoneService(zonestore.New(), clock.NewSystem(), app.WithBounds(cfg.Bounds))
			res, err := zoneimport.New(svc, logger).ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported=%d skipped=%d\n", res.Imported, res.Skipped)
			return nil
		},
	}
}
