package main

import (
	"context"
	"fmt"

	"vending-machine/config"
	"vending-machine/internal/adapter/storage/csvfile"
	pgStorage "vending-machine/internal/adapter/storage/postgres"
	redisStorage "vending-machine/internal/adapter/storage/redis"
	"vending-machine/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfgFile       string
	inventoryPath string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "vend",
		Short: "Vending machine simulator",
		Long: `vend simulates a single vending machine backed by a CSV stock file.

Example Usage:
  vend run                        # Serve customers on this terminal
  vend stock                      # Show what is in the machine
  vend restock "Mars Bar" 10      # Add units of an item
  vend export --out stock.xlsx    # Write a stock report
  vend serve                      # Start the read-only status server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Name())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to a config file (default ./config.yaml or ./config/config.yaml)")
	root.PersistentFlags().StringVar(&a.inventoryPath, "inventory", "", "Path to the stock file (overrides inventory.path)")

	root.AddCommand(
		newRunCmd(a),
		newStockCmd(a),
		newRestockCmd(a),
		newSalesCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return root
}

// load reads configuration and builds the logger.
func (a *app) load(command string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.inventoryPath != "" {
		cfg.Inventory.Path = a.inventoryPath
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	a.cfg = cfg
	a.log = logger.ForInventory(logger.ForCommand(log, command), cfg.Inventory.Path)
	return nil
}

// openStore loads the stock file into a new store.
func (a *app) openStore(ctx context.Context) (*csvfile.InventoryStore, error) {
	store := csvfile.NewInventoryStore(a.cfg.Inventory, a.log)
	if _, err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// openLedger connects to the sale ledger and makes sure its table exists.
// The caller must invoke the returned close function.
func (a *app) openLedger(ctx context.Context) (*pgStorage.SaleRepo, *pgStorage.HealthCheck, func(), error) {
	pool, err := pgStorage.NewPool(ctx, a.cfg.Database, a.log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to the sale ledger: %w", err)
	}

	repo := pgStorage.NewSaleRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	return repo, pgStorage.NewHealthCheck(pool), pool.Close, nil
}

// openRedis connects to the Redis instance holding session locks and rate limits.
func (a *app) openRedis(ctx context.Context) (*goredis.Client, error) {
	client, err := redisStorage.NewClient(ctx, a.cfg.Redis, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
