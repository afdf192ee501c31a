package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCatalog bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the storefront tables in the SQL remote store",
	Long: `Apply the schema for products, cart_items, orders, order_items, bookings,
feedback and checkout_journal to the store selected by remote.driver
(sqlite or postgres). Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openSQLStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := migrate(cmd.Context(), store, seedCatalog); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", store.Dialect())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&seedCatalog, "seed", true, "insert the built-in products when missing")
}
