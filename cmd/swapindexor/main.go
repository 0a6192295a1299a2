package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/config"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/metrics"
	"github.com/goran-ethernal/SwapIndexor/internal/network"
	"github.com/goran-ethernal/SwapIndexor/pkg/api"
	pkgconfig "github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║          SwapIndexor v%s               ║
║      DEX swap indexer for DeFiChain       ║
╚═══════════════════════════════════════════╝
`
	metricsStopTimeout = 5 * time.Second
)

var (
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swapindexor",
	Short: "SwapIndexor - DEX swap indexer",
	Long: `SwapIndexor follows one or more DeFiChain nodes, keeps a rolling window of
recent blocks per network, repairs chain reorganizations and serves the detected
DEX swaps over a REST API.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runIndexer,
}

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List configured networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, n := range cfg.Networks {
			archive := "off"
			if n.ArchiveEnabled() {
				archive = n.Archive.DB.Path
			}
			fmt.Fprintf(out, "  - %s (window: %d blocks, archive: %s)\n", n.Name, n.BlockCacheCount, archive)
		}
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "config-schema",
	Short: "Print the JSON schema of the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := pkgconfig.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.AddCommand(networksCmd, configSchemaCmd)
}

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentSynchronizer, cfg.Logging)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, log)
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), metricsStopTimeout)
			defer cancel()
			if err := metricsServer.Stop(stopCtx); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	log.Infof("Connecting to %d network(s)...", len(cfg.Networks))
	set, err := network.NewSet(ctx, cfg, network.Options{})
	if err != nil {
		return fmt.Errorf("failed to set up networks: %w", err)
	}

	if err := set.Start(ctx); err != nil {
		return fmt.Errorf("failed to start networks: %w", err)
	}
	for _, n := range set.Networks() {
		log.Infof("✓ Indexing %s (archive: %t)", n.Name(), n.Archived())
	}

	apiDone := make(chan error, 1)
	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(
			cfg.API,
			set,
			logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging),
		)
		go func() { apiDone <- apiServer.Start(ctx) }()
	} else {
		apiDone <- nil
	}

	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	stopErr := set.Stop()
	if err := <-apiDone; err != nil {
		log.Errorf("API server error: %v", err)
	}
	if stopErr != nil {
		return fmt.Errorf("failed to stop networks: %w", stopErr)
	}

	log.Info("SwapIndexor stopped successfully")
	return nil
}
