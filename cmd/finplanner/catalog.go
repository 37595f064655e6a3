package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/finplanner/internal/cli"
	"github.com/mmynk/finplanner/internal/service"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show savings tiers and investment categories",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog("")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCatalog(service.CatalogResponse(cat)))
	return nil
}
