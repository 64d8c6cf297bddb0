package main

import (
	"context"
	"errors"
	"fmt"

	"vending-machine/internal/adapter/cli"
	redisStorage "vending-machine/internal/adapter/storage/redis"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
	"vending-machine/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Serve customers on this terminal",
		Args:  cobra.NoArgs,
		// Signals are left at their defaults: an interrupted session dies at
		// the prompt and its lock lapses after session.lock_ttl.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), cmd)
		},
	}
}

func (a *app) run(ctx context.Context, cmd *cobra.Command) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	// Sale ledger
	var repo ports.SaleRepository
	if a.cfg.Database.Enabled {
		saleRepo, _, closeLedger, err := a.openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()
		repo = saleRepo
	}

	// Session lock
	if a.cfg.Redis.Enabled {
		client, err := a.openRedis(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		lock := redisStorage.NewSessionLock(client, store.Path())
		owner := uuid.NewString()
		release, err := acquireSession(ctx, lock, owner, a.cfg.Session.LockTTL)
		if err != nil {
			return fmt.Errorf("%w (%s)", err, store.Path())
		}
		defer func() {
			if err := release(); err != nil {
				a.log.Warn().Err(err).Str("key", lock.Key()).Msg("failed to release session lock")
			}
		}()
		a.log.Info().Str("key", lock.Key()).Str("owner", owner).Msg("session lock acquired")
	}

	machine := service.NewMachine(store, domain.NewCoinCatalog(), service.NewSaleRecorder(repo, a.log), a.log)
	err = cli.NewSession(machine, cmd.InOrStdin(), cmd.OutOrStdout(), a.log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
