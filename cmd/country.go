package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tempviz-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/tempviz-cli/internal/config"
	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
)

var countryFlags scriptFlags

var countryScript = script[*dataset.CountryTable]{
	title:   "Temperaturas por País",
	catalog: charts.CountryCharts,
	flags:   &countryFlags,
	input:   func(c *cfgpkg.Global) string { return c.CountryFile },
	load:    dataset.LoadCountry,
	describe: func(t *dataset.CountryTable) string {
		return fmt.Sprintf("%d rows, %d countries", len(t.Records), len(t.Countries()))
	},
}

var countryCmd = &cobra.Command{
	Use:   "temp-paises",
	Short: "Render charts of the per-country monthly temperature series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return countryScript.run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(countryCmd)
	countryFlags.register(countryCmd, charts.CountryCharts.Keys())
}
