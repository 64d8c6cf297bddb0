package main

import (
	"fmt"
	"os"
	"time"

	"vending-machine/internal/adapter/report"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current stock to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			if err := report.WriteStock(f, store.Snapshot(), time.Now()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close report file: %w", err)
			}

			a.log.Info().Str("path", out).Msg("stock report written")
			fmt.Fprintf(cmd.OutOrStdout(), "Stock report written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "stock.xlsx", "Report file to write")
	return cmd
}
