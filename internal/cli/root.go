// Package cli implements the khata command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khata-pos/khata/internal/config"
	"github.com/khata-pos/khata/internal/directory"
	"github.com/khata-pos/khata/internal/domain"
	"github.com/khata-pos/khata/internal/infra/sqlite"
	"github.com/khata-pos/khata/internal/ledger"
	"github.com/khata-pos/khata/internal/logger"
	"github.com/khata-pos/khata/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "khata",
	Short: "Local point-of-sale loan ledger",
	Long: `khata is a single-user point-of-sale loan ledger.
It tracks customer debts and repayments in a local store, re-deriving
every view from the stored ledger so state is always consistent with
what is on disk.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config.toml")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ─── Shared Setup ───────────────────────────────────────────────────────────

// services bundles everything a command needs.
type services struct {
	cfg       config.Config
	ledger    *ledger.Service
	directory *directory.Service
	close     func()
}

// openServices loads config, configures logging, opens the store, and
// wires the ledger and directory services.
func openServices() (*services, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	st := store.NewSQLStore(db, logger.WithComponent("store"))
	led := ledger.NewService(st, domain.NewIDSource(), logger.WithComponent("ledger"))
	dir := directory.NewService(st, logger.WithComponent("directory"))

	return &services{
		cfg:       cfg,
		ledger:    led,
		directory: dir,
		close:     func() { db.Close() },
	}, nil
}
