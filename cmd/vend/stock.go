package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/service"
	"vending-machine/pkg/apperror"

	"github.com/spf13/cobra"
)

func newStockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show the items, prices and stock levels in the machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			printStock(cmd.OutOrStdout(), store.Path(), store.Snapshot())
			return nil
		},
	}
}

func newRestockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restock NAME QTY",
		Short: "Add QTY units of NAME and save the stock file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return apperror.ErrInvalidRequest(fmt.Sprintf("quantity %q is not a whole number", args[1]))
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			machine := service.NewMachine(store, domain.NewCoinCatalog(), nil, a.log)
			item, err := machine.Restock(cmd.Context(), args[0], qty)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in stock\n", item.Name, item.Quantity)
			return nil
		},
	}
}

func printStock(out io.Writer, path string, inv *domain.Inventory) {
	fmt.Fprintf(out, "Stock file: %s\n", path)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tPRICE\tSTOCK\tVALUE")
	for _, item := range inv.Items() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", item.Name, item.Price.Pounds(), item.Quantity, item.StockValue().Pounds())
	}
	w.Flush()

	sum := service.SummarizeStock(inv)
	fmt.Fprintf(out, "%d items, %d units, %d sold out, worth %s\n", sum.Items, sum.Units, sum.SoldOut, sum.Value.Pounds())
}
