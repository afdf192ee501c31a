package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/storefront/core/catalog"
)

var (
	catalogCategory string
	catalogRemote   bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the product catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.New(nil)
		if catalogRemote {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			cat = catalog.New(b.remote)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tRATING\tFEATURES")
		for _, p := range cat.List(cmd.Context(), catalogCategory) {
			stock := "in stock"
			if !p.InStock {
				stock = "out of stock"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
				p.ID, p.Name, p.Category, p.Price.StringFixed(2), stock, p.Rating, strings.Join(p.Features, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "only show this category")
	catalogCmd.Flags().BoolVar(&catalogRemote, "remote", false, "read products from the configured remote store")
}
