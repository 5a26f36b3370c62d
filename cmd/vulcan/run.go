package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/vulcan/pkg/cli"
	"mercator-hq/vulcan/pkg/config"
	"mercator-hq/vulcan/pkg/pools"
	"mercator-hq/vulcan/pkg/server"
	"mercator-hq/vulcan/pkg/telemetry/logging"
	"mercator-hq/vulcan/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress  string
	metricsAddress string
	logLevel       string
	dryRun         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Vulcan relay",
	Long: `Start the Vulcan relay with the specified configuration.

The relay listens on the configured address, validates every Stratum
frame in both directions, and forwards traffic byte-for-byte between
each mining client and the highest-priority healthy pool.

Examples:
  # Start with default config
  vulcan run

  # Start with custom config
  vulcan run --config /etc/vulcan/config.yaml

  # Override listen address
  vulcan run --listen 0.0.0.0:3333

  # Validate config without starting the relay
  vulcan run --dry-run`,
	RunE: runRelay,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override relay listen address")
	runCmd.Flags().StringVar(&runFlags.metricsAddress, "metrics-listen", "", "override metrics listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the relay")
}

func runRelay(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.metricsAddress != "" {
		cfg.Telemetry.Metrics.ListenAddress = runFlags.metricsAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	// Build the pool registry in config order; order is failover priority.
	entries := make([]*pools.Pool, 0, len(cfg.Pools))
	for _, pc := range cfg.Pools {
		entries = append(entries, pools.New(pc.Host, pc.Port))
	}
	registry := pools.NewRegistry(entries)
	if registry.Len() == 0 {
		slog.Warn("no pools configured, all client connections will be refused")
	}

	// Root context for every component; a SIGINT or SIGTERM cancels it
	// and begins the graceful shutdown sequence below.
	ctx := cli.SetupSignalHandler()

	// Metrics collector and HTTP server (optional)
	var collector *metrics.Collector
	var metricsSrv *metrics.Server
	if cfg.Telemetry.Metrics.MetricsEnabled() {
		collector = metrics.NewCollector(nil, registry)
		metricsSrv = metrics.NewServer(cfg.Telemetry.Metrics.ListenAddress, collector, registry)
		go func() {
			if err := metricsSrv.Start(ctx); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		fmt.Printf("✓ Metrics listening on %s\n", cfg.Telemetry.Metrics.ListenAddress)
	}

	// Health monitor with an immediate first sweep so failover state is
	// populated before the first client arrives.
	hooks := pools.MonitorHooks{}
	if collector != nil {
		hooks.ProbeFailed = func(p *pools.Pool) {
			collector.ProbeFailed(p.Addr())
		}
	}
	monitor := pools.NewMonitor(registry, cfg.Health.Interval, cfg.Health.Timeout, hooks)
	if registry.Len() > 0 {
		if err := monitor.Start(ctx); err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to start health monitor: %w", err))
		}
		defer monitor.Stop()
		go monitor.ProbeAll()
		fmt.Printf("✓ Health monitor started (%d pools, every %s)\n", registry.Len(), cfg.Health.Interval)
	}

	// Relay server
	srv := server.NewServer(&cfg.Proxy, registry, collector)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	fmt.Println()
	fmt.Printf("✓ Relay listening on %s\n", cfg.Proxy.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	select {
	case err := <-errChan:
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		return nil
	case <-ctx.Done():
		fmt.Println("\nShutdown signal received, shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Proxy.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(); err != nil {
			slog.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics shutdown failed", "error", err)
			}
		}

		// Let the relay goroutine drain before returning.
		select {
		case <-errChan:
		case <-time.After(cfg.Proxy.ShutdownTimeout):
		}

		fmt.Println("✓ Relay stopped")
		return nil
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Vulcan v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	if len(cfg.Pools) > 0 {
		slog.Debug("pools configured", "count", len(cfg.Pools))
	}
	if cfg.Telemetry.Metrics.MetricsEnabled() {
		slog.Debug("metrics enabled", "address", cfg.Telemetry.Metrics.ListenAddress)
	}
}
