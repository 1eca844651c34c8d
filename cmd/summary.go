package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
	"github.com/KaramelBytes/tempviz-cli/internal/report"
	"github.com/KaramelBytes/tempviz-cli/internal/utils"
)

var (
	sumKind   string
	sumFile   string
	sumOutput string
	sumXLSX   string
)

var summaryCmd = &cobra.Command{
	Use:   "resumo",
	Short: "Print a tabular summary of a temperature CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		var tbl report.Table
		switch sumKind {
		case "global":
			path := sumFile
			if path == "" {
				path = c.GlobalFile
			}
			t, err := dataset.LoadGlobal(path)
			if err != nil {
				return err
			}
			tbl = report.GlobalSummary(t)
		case "paises":
			path := sumFile
			if path == "" {
				path = c.CountryFile
			}
			t, err := dataset.LoadCountry(path)
			if err != nil {
				return err
			}
			tbl = report.CountrySummary(t)
		default:
			return fmt.Errorf("invalid --tipo: %s (use global or paises)", sumKind)
		}

		var buf bytes.Buffer
		if err := report.WriteText(&buf, tbl); err != nil {
			return err
		}
		// Decide where to write: --output path and/or --xlsx, or stdout
		written := false
		if sumOutput != "" {
			if err := utils.SafeWriteFile(sumOutput, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Resumo gravado em %s\n", okMark(), sumOutput)
			written = true
		}
		if sumXLSX != "" {
			if err := report.WriteXLSX(sumXLSX, tbl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Planilha gravada em %s\n", okMark(), sumXLSX)
			written = true
		}
		if !written {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumKind, "tipo", "t", "global", "dataset kind: global | paises")
	summaryCmd.Flags().StringVarP(&sumFile, "arquivo", "a", "", "input CSV (default from config)")
	summaryCmd.Flags().StringVar(&sumOutput, "output", "", "optional path to write the text table")
	summaryCmd.Flags().StringVar(&sumXLSX, "xlsx", "", "optional path to write an .xlsx workbook")
}
