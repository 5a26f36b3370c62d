package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"mercator-hq/vulcan/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load the configuration file, apply defaults and environment
overrides, and report every validation error found.

Examples:
  # Validate the default config file
  vulcan validate

  # Validate a specific file
  vulcan validate --config /etc/vulcan/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("✗ Configuration invalid (%d errors):\n", len(verr.Errors))
			for _, fe := range verr.Errors {
				fmt.Printf("  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("validation failed")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Listen address: %s\n", cfg.Proxy.ListenAddress)
	fmt.Printf("  Pools: %d\n", len(cfg.Pools))
	for i, pc := range cfg.Pools {
		fmt.Printf("    %d. %s:%d\n", i+1, pc.Host, pc.Port)
	}
	fmt.Printf("  Health probe: every %s (timeout %s)\n", cfg.Health.Interval, cfg.Health.Timeout)
	if cfg.Telemetry.Metrics.MetricsEnabled() {
		fmt.Printf("  Metrics: %s\n", cfg.Telemetry.Metrics.ListenAddress)
	} else {
		fmt.Println("  Metrics: disabled")
	}
	return nil
}
