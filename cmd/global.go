package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tempviz-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/tempviz-cli/internal/config"
	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
)

var globalFlags scriptFlags

var globalScript = script[*dataset.GlobalTable]{
	title:   "Temperaturas Globais",
	catalog: charts.GlobalCharts,
	flags:   &globalFlags,
	input:   func(c *cfgpkg.Global) string { return c.GlobalFile },
	load:    dataset.LoadGlobal,
	describe: func(t *dataset.GlobalTable) string {
		return fmt.Sprintf("%d rows, columns %v", len(t.Records), t.Columns)
	},
}

var globalCmd = &cobra.Command{
	Use:   "temp-global",
	Short: "Render charts of the global monthly temperature series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return globalScript.run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(globalCmd)
	globalFlags.register(globalCmd, charts.GlobalCharts.Keys())
}
