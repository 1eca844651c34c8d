package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/tempviz-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/tempviz-cli/internal/config"
	"github.com/KaramelBytes/tempviz-cli/internal/gui"
)

// scriptFlags are the flags shared by the data scripts.
type scriptFlags struct {
	chart  string
	file   string
	outDir string
	show   bool
}

func (f *scriptFlags) register(c *cobra.Command, keys []string) {
	c.Flags().StringVarP(&f.chart, "grafico", "g", charts.All, "chart to render: "+strings.Join(keys, "|"))
	c.Flags().StringVarP(&f.file, "arquivo", "a", "", "input CSV (default from config)")
	c.Flags().StringVarP(&f.outDir, "saida", "o", "", "output directory for images (default from config)")
	c.Flags().BoolVar(&f.show, "mostrar", false, "open the rendered charts in a window")
}

func (f *scriptFlags) reset() {
	f.chart = charts.All
	f.file = ""
	f.outDir = ""
	f.show = false
}

// script describes one data script: its chart catalog and how to load its
// dataset.
type script[T any] struct {
	title    string
	catalog  charts.Catalog[T]
	flags    *scriptFlags
	input    func(*cfgpkg.Global) string
	load     func(path string) (T, error)
	describe func(T) string
}

func (s script[T]) run(cmd *cobra.Command) error {
	if !s.catalog.Valid(s.flags.chart) {
		return fmt.Errorf("invalid --grafico %q (choose from %s)", s.flags.chart, strings.Join(s.catalog.Keys(), ", "))
	}
	c, err := settings()
	if err != nil {
		return err
	}
	path := s.flags.file
	if path == "" {
		path = s.input(c)
	}
	outDir := s.flags.outDir
	if outDir == "" {
		outDir = c.OutputDir
	}
	debugf("input=%s output=%s chart=%s", path, outDir, s.flags.chart)

	data, err := s.load(path)
	if err != nil {
		return err
	}
	debugf("loaded %s", s.describe(data))

	opt := charts.Options{
		OutDir:         outDir,
		Width:          vg.Length(c.WidthIn) * vg.Inch,
		Height:         vg.Length(c.HeightIn) * vg.Inch,
		Countries:      c.Countries,
		HeatmapCountry: c.HeatmapCountry,
	}
	results, err := charts.Run(s.catalog, s.flags.chart, data, opt)
	printResults(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}

	show := c.Show
	if cmd.Flags().Changed("mostrar") {
		show = s.flags.show
	}
	if show {
		gui.ShowCharts(s.title, results)
	}
	return nil
}

func okMark() string   { return color.New(color.FgGreen).Sprint("✓") }
func warnMark() string { return color.New(color.FgYellow).Sprint("⚠ Aviso:") }

func printResults(w io.Writer, results []charts.Result) {
	for _, r := range results {
		switch r.Status {
		case charts.Skipped:
			fmt.Fprintf(w, "%s %s\n", warnMark(), r.Reason)
		case charts.Rendered:
			fmt.Fprintf(w, "%s %s → %s\n", okMark(), r.Title, r.Path)
		}
	}
}
