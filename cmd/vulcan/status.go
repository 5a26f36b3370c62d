package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/vulcan/pkg/cli"
	"mercator-hq/vulcan/pkg/config"
	"mercator-hq/vulcan/pkg/pools"
)

var statusFlags struct {
	address string
	format  string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pool status of a running relay",
	Long: `Query the /status endpoint of a running relay's metrics server and
print the pool snapshot.

Examples:
  # Query the relay using the configured metrics address
  vulcan status

  # Query a specific address
  vulcan status --address 10.0.0.5:3000

  # Machine-readable output
  vulcan status --format json`,
	RunE: showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFlags.address, "address", "", "metrics server address (uses config if not specified)")
	statusCmd.Flags().StringVar(&statusFlags.format, "format", "text", "output format: text, json")
}

func showStatus(cmd *cobra.Command, args []string) error {
	addr := statusFlags.address
	if addr == "" {
		if err := config.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		addr = config.GetConfig().Telemetry.Metrics.ListenAddress
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/status", hostport(addr)))
	if err != nil {
		return cli.NewCommandError("status", fmt.Errorf("relay unreachable: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cli.NewCommandError("status", fmt.Errorf("unexpected response: %s", resp.Status))
	}

	var snapshot pools.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return cli.NewCommandError("status", fmt.Errorf("failed to decode status: %w", err))
	}

	if statusFlags.format == string(cli.FormatJSON) {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, snapshot)
	}

	fmt.Printf("Connections served: %d\n", snapshot.TotalConnections)
	fmt.Printf("Pools: %d\n", len(snapshot.Pools))
	for _, p := range snapshot.Pools {
		state := "healthy"
		if !p.Healthy {
			state = "unhealthy"
		}
		fmt.Printf("  %-30s %-10s %d active\n", p.Host, state, p.Connections)
	}
	return nil
}

// hostport fills in a loopback host for bare ":port" listen addresses.
func hostport(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
