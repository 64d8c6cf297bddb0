package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	pgStorage "vending-machine/internal/adapter/storage/postgres"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/service"

	"github.com/spf13/cobra"
)

var errLedgerDisabled = errors.New("the sale ledger is disabled; set database.enabled (VEND_DATABASE_ENABLED=true)")

func newSalesCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List the most recent sales from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Database.Enabled {
				return errLedgerDisabled
			}

			repo, _, closeLedger, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLedger()

			sales, summary, err := service.NewReportingService(repo).RecentSales(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printSales(cmd.OutOrStdout(), sales, summary)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", pgStorage.DefaultListLimit, "Number of sales to show")
	return cmd
}

func printSales(out io.Writer, sales []domain.Sale, sum domain.SalesSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tITEM\tSTATUS\tPRICE\tPAID\tCHANGE\tREFUND")
	for _, s := range sales {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.CreatedAt.Local().Format(time.DateTime),
			s.ItemName, s.Status,
			s.Price.Pounds(), s.Paid.Pounds(), s.Change.Pounds(), s.Refund.Pounds(),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "%d sales: %d fulfilled, %d cancelled, %d sold out. Revenue %s, refunded %s\n",
		sum.Count, sum.Fulfilled, sum.Cancelled, sum.InsufficientStock,
		sum.Revenue.Pounds(), sum.Refunded.Pounds())
}
