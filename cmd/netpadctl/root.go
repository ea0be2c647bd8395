package main

import (
	"time"

	"github.com/spf13/cobra"

	netpad "github.com/netpad/client-go"
)

var (
	flagURL     string
	flagAPIKey  string
	flagTimeout time.Duration
	flagRetries int
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "netpadctl",
	Short: "Interact with the NetPad API from the command line",
	Long: `netpadctl sends commands, tool executions, and workflow runs to a
NetPad API endpoint and prints the JSON responses.

Configuration is resolved from flags, then NETPAD_* environment
variables, then built-in defaults.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "API base URL (default $NETPAD_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (default $NETPAD_API_KEY)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (default $NETPAD_TIMEOUT)")
	rootCmd.PersistentFlags().IntVar(&flagRetries, "retries", -1, "retries for transient failures (default $NETPAD_RETRIES)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "disable request logging")
}

// newClient builds a client from flags layered over the environment.
func newClient() (*netpad.Client, error) {
	var opts []netpad.Option
	if flagURL != "" {
		opts = append(opts, netpad.WithBaseURL(flagURL))
	}
	if flagAPIKey != "" {
		opts = append(opts, netpad.WithAPIKey(flagAPIKey))
	}
	if flagTimeout > 0 {
		opts = append(opts, netpad.WithTimeout(flagTimeout))
	}
	if flagRetries >= 0 {
		opts = append(opts, netpad.WithRetries(flagRetries))
	}
	if flagQuiet {
		opts = append(opts, netpad.WithLogging(false))
	}
	return netpad.New(opts...)
}
