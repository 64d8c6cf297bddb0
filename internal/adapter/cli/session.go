// Package cli drives purchases from a line-oriented text terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
	"vending-machine/pkg/apperror"

	"github.com/rs/zerolog"
)

// Session is one customer-facing terminal over a VendingService.
type Session struct {
	svc ports.VendingService
	in  *bufio.Scanner
	out io.Writer
	log zerolog.Logger
}

// NewSession creates a session reading commands from in and writing to out.
func NewSession(svc ports.VendingService, in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	return &Session{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

// Run serves purchases until the customer quits, input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.printf("Vending machine ready. Stock file: %s\n", s.svc.InventoryPath())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := s.purchase(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// purchase drives one transaction to a terminal state. done is true once the
// customer quit or input ended.
func (s *Session) purchase(ctx context.Context) (bool, error) {
	p := s.svc.Begin()
	s.printItems()

	for p.Snapshot().Status == domain.TransactionStatusSelecting {
		line, ok := s.prompt("Select an item (q to quit): ")
		if !ok {
			return true, s.in.Err()
		}
		switch {
		case line == "":
			continue
		case isQuit(line):
			s.printf("Goodbye.\n")
			return true, nil
		}
		if err := p.SelectItem(ctx, line); err != nil {
			s.report(err)
			if apperror.IsFatal(err) {
				return false, nil
			}
		}
	}

	tx := p.Snapshot()
	if tx.Status == domain.TransactionStatusCollecting {
		s.printf("%s costs %s.\n", tx.ItemName, tx.Price.Pounds())
		s.printCoins()
	}

	for p.Snapshot().Status == domain.TransactionStatusCollecting {
		line, ok := s.prompt(fmt.Sprintf("Balance %s. Coin (c to cancel): ", p.Snapshot().Balance.Pounds()))
		if !ok {
			s.cancel(ctx, p)
			s.printOutcome(p.Snapshot())
			return true, s.in.Err()
		}
		if line == "" {
			continue
		}
		if isCancel(line) {
			s.cancel(ctx, p)
			break
		}

		code, err := strconv.Atoi(line)
		if err != nil {
			s.printf("%q is not a coin selection.\n", line)
			continue
		}
		if err := p.InsertCoin(ctx, code); err != nil {
			s.report(err)
		}
	}

	s.printOutcome(p.Snapshot())
	return false, nil
}

func (s *Session) cancel(ctx context.Context, p ports.Purchase) {
	if err := p.Cancel(ctx); err != nil {
		s.report(err)
	}
}

func (s *Session) prompt(text string) (string, bool) {
	s.printf("%s", text)
	if !s.in.Scan() {
		s.printf("\n")
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) printItems() {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tPRICE\tSTOCK")
	for _, item := range s.svc.Items() {
		stock := strconv.Itoa(item.Quantity)
		if !item.InStock() {
			stock = "sold out"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Name, item.Price.Pounds(), stock)
	}
	w.Flush()
}

func (s *Session) printCoins() {
	var b strings.Builder
	for i, d := range s.svc.Coins() {
		if i > 0 {
			b.WriteString("  ")
		}
		if d.Terminator {
			fmt.Fprintf(&b, "%d=%s", d.Code, d.Name)
			continue
		}
		fmt.Fprintf(&b, "%d=%s", d.Code, d.Value.Pounds())
	}
	s.printf("%s\n", b.String())
}

func (s *Session) printOutcome(tx *domain.Transaction) {
	switch tx.Status {
	case domain.TransactionStatusFulfilled:
		s.printf("Dispensing %s. Change: %s\n", tx.ItemName, tx.Change.Pounds())
	case domain.TransactionStatusCancelled:
		s.printf("Purchase cancelled. Refund: %s\n", tx.Refund.Pounds())
	case domain.TransactionStatusInsufficientStock:
		s.printf("Sorry, %s is sold out. Refund: %s\n", tx.ItemName, tx.Refund.Pounds())
	}
}

// report prints err for the customer. Fatal errors are also logged with the
// stock file location.
func (s *Session) report(err error) {
	msg := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	s.printf("Error: %s\n", msg)

	if apperror.IsFatal(err) {
		s.log.Error().Err(err).Str("path", s.svc.InventoryPath()).Msg("purchase failed")
		s.printf("Please report this fault. Stock file: %s\n", s.svc.InventoryPath())
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func isQuit(line string) bool {
	return strings.EqualFold(line, "q") || strings.EqualFold(line, "quit")
}

func isCancel(line string) bool {
	return strings.EqualFold(line, "c") || strings.EqualFold(line, "cancel")
}
