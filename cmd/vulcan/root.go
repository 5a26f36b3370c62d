package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vulcan",
	Short: "Vulcan - transparent Stratum relay for mining fleets",
	Long: `Vulcan is a transparent relay between Stratum mining clients and
upstream mining pools.

It accepts TCP connections from miners and relays traffic byte-for-byte
to the highest-priority healthy pool, providing:
  - Line-delimited JSON-RPC frame validation in both directions
  - Priority-ordered pool failover with periodic health probes
  - Per-direction frame counters and pool gauges over Prometheus`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
