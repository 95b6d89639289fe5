package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic product index from the catalog",
	Long: `Loads the product catalog, embeds every product, and persists the vector
index under the data directory. Reuses an existing index when the catalog
has not changed; pass --rebuild to force re-embedding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, idx, err := openIndex(context.Background(), cfg, indexRebuild, false)
		if err != nil {
			return err
		}

		fmt.Printf("Indexed %d of %d products into %s\n", idx.Count(), cat.Len(), cfg.DataDir)
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "re-embed the catalog even if the index is current")
	rootCmd.AddCommand(indexCmd)
}
