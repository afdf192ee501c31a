// Package cmd implements the storefront command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API: catalog, cart, checkout, bookings and feedback",
	Long: `storefront serves the JSON API behind the storefront: product browsing,
a per-browser shopping cart mirrored to the remote store, checkout, service
bookings and customer feedback.

Configuration is read from storefront.yaml (or --config) and STOREFRONT_*
environment variables. SUPABASE_URL and SUPABASE_ANON_KEY select the hosted
backend.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./storefront.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	telemetry.InitLogger(cfg.Log.Level)
	return cfg, nil
}
