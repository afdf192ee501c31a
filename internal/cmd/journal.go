package cmd

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/sqlstore"
)

var journalCmd = &cobra.Command{
	Use:   "journal <run-id>",
	Short: "Show the latest journal entry of a checkout run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Journal.Enabled {
			return errors.New("journal is disabled")
		}

		b, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		store, ok := b.journal.(*sqlstore.Store)
		if !ok {
			return errors.New("journal is not SQL-backed")
		}
		entry, err := store.GetLatest(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
}
