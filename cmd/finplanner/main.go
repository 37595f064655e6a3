package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/finplanner/internal/catalog"
)

var flagCatalog string

var rootCmd = &cobra.Command{
	Use:   "finplanner",
	Short: "Personal finance planner",
	Long: "Plan monthly savings and investments from a salary and a list of expenses.\n" +
		"Run `finplanner plan` for a one-off plan or `finplanner serve` for the Connect API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog TOML file (default: built-in catalog, or CATALOG_PATH for serve)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCatalog returns the catalog named by --catalog, falling back to path.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if flagCatalog != "" {
		path = flagCatalog
	}
	return catalog.Load(path)
}
