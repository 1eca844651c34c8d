package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
)

// resetFlags restores every flag of c and its children to its default so
// values do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns its output.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeGlobalCSV(t *testing.T, dir string, years int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("dt,LandAverageTemperature,LandAverageTemperatureUncertainty,LandMaxTemperature,LandMinTemperature,LandAndOceanAverageTemperature,LandAndOceanAverageTemperatureUncertainty\n")
	for y := 0; y < years; y++ {
		for m := 1; m <= 12; m++ {
			avg := float64(m) + float64(y)*0.1
			fmt.Fprintf(&b, "%d-%02d-01,%.2f,0.5,%.2f,%.2f,%.2f,0.1\n", 1990+y, m, avg, avg+5, avg-5, avg+10)
		}
	}
	path := filepath.Join(dir, "GlobalTemperatures.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func writeCountryCSV(t *testing.T, dir string, countries ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("dt,AverageTemperature,AverageTemperatureUncertainty,Country\n")
	for i, c := range countries {
		for y := 0; y < 3; y++ {
			for m := 1; m <= 12; m++ {
				fmt.Fprintf(&b, "%d-%02d-01,%.2f,0.3,%s\n", 2000+y, m, float64(10+i+m), c)
			}
		}
	}
	// One row without a temperature is dropped at load time.
	fmt.Fprintf(&b, "2003-01-01,,,%s\n", countries[0])
	path := filepath.Join(dir, "GlobalLandTemperaturesByCountry.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCLI_GlobalRendersEveryChart(t *testing.T) {
	home := isolateHome(t)
	in := writeGlobalCSV(t, home, 12)
	outDir := filepath.Join(home, "out")

	out := runCmd(t, "temp-global", "--arquivo", in, "--saida", outDir)
	for _, key := range []string{"sazonal", "media_movel", "comparacao", "decadas"} {
		if _, err := os.Stat(filepath.Join(outDir, key+".png")); err != nil {
			t.Fatalf("missing %s.png: %v\n%s", key, err, out)
		}
	}
	if strings.Count(out, "✓") != 4 {
		t.Fatalf("expected 4 rendered lines, got:\n%s", out)
	}
}

func TestCLI_GlobalSingleChart(t *testing.T) {
	home := isolateHome(t)
	in := writeGlobalCSV(t, home, 2)
	outDir := filepath.Join(home, "out")

	runCmd(t, "temp-global", "-g", "decadas", "-a", in, "-o", outDir)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "decadas.png" {
		t.Fatalf("unexpected outputs: %v", entries)
	}
}

func TestCLI_GlobalMissingFile(t *testing.T) {
	home := isolateHome(t)
	_, err := execCmd(t, "temp-global", "--arquivo", filepath.Join(home, "nope.csv"))
	if !errors.Is(err, dataset.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestCLI_InvalidChartKey(t *testing.T) {
	home := isolateHome(t)
	in := writeGlobalCSV(t, home, 1)
	_, err := execCmd(t, "temp-global", "--arquivo", in, "--grafico", "mapa")
	if err == nil || !strings.Contains(err.Error(), "invalid --grafico") {
		t.Fatalf("err = %v", err)
	}
}

func TestCLI_CountryHeatmapSkippedWithoutBrazil(t *testing.T) {
	home := isolateHome(t)
	in := writeCountryCSV(t, home, "Chile", "Peru")
	outDir := filepath.Join(home, "out")

	out := runCmd(t, "temp-paises", "--arquivo", in, "--saida", outDir)
	if !strings.Contains(out, "⚠ Aviso:") || !strings.Contains(out, "Brazil") {
		t.Fatalf("expected heatmap warning, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "mapa.png")); !os.IsNotExist(err) {
		t.Fatalf("mapa.png should not exist: %v", err)
	}
	for _, key := range []string{"evolucao", "decada", "amplitude", "distribuicao"} {
		if _, err := os.Stat(filepath.Join(outDir, key+".png")); err != nil {
			t.Fatalf("missing %s.png: %v", key, err)
		}
	}
}

func TestCLI_SummaryXLSXAndText(t *testing.T) {
	home := isolateHome(t)
	in := writeCountryCSV(t, home, "Brazil")
	txt := filepath.Join(home, "resumo.txt")
	xlsx := filepath.Join(home, "resumo.xlsx")

	out := runCmd(t, "resumo", "--tipo", "paises", "--arquivo", in, "--output", txt, "--xlsx", xlsx)
	if !strings.Contains(out, "✓ Planilha gravada") {
		t.Fatalf("output: %s", out)
	}
	b, err := os.ReadFile(txt)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(b), "Brazil") || !strings.Contains(string(b), "36") {
		t.Fatalf("summary missing row:\n%s", b)
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Fatalf("xlsx not written: %v", err)
	}

	if _, err := execCmd(t, "resumo", "--tipo", "marte", "--arquivo", in); err == nil {
		t.Fatalf("expected error for unknown --tipo")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "tempviz.yaml")

	runCmd(t, "--config", path, "config", "set", "heatmap_country", "Chile")
	runCmd(t, "--config", path, "config", "set", "countries", "Chile, Peru")
	if _, err := execCmd(t, "--config", path, "config", "set", "width_in", "0"); err == nil {
		t.Fatalf("expected error for zero width")
	}

	loadConfigFrom(t, path)
	out, err := execShow(t)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "heatmap_country: Chile") || !strings.Contains(out, "countries: Chile, Peru") {
		t.Fatalf("show output:\n%s", out)
	}
}

func TestChildArgsForwardsConfig(t *testing.T) {
	cfgFile, debug, menuNoShow = "/tmp/x.yaml", true, false
	defer func() { cfgFile, debug = "", false }()
	got := strings.Join(childArgs(), " ")
	if got != "--mostrar --config /tmp/x.yaml --debug" {
		t.Fatalf("childArgs = %q", got)
	}
}

// loadConfigFrom mimics the OnInitialize hook, which tests do not install.
func loadConfigFrom(t *testing.T, path string) {
	t.Helper()
	resetFlags(rootCmd)
	cfgFile = path
	loadConfig()
	if cfg == nil {
		t.Fatalf("config not loaded from %s", path)
	}
}

func execShow(t *testing.T) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgFile, "config", "show"})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_CountryHeaderOnlySkipsHeatmap(t *testing.T) {
	home := isolateHome(t)
	in := filepath.Join(home, "vazio.csv")
	if err := os.WriteFile(in, []byte("dt,AverageTemperature,AverageTemperatureUncertainty,Country\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := runCmd(t, "temp-paises", "--arquivo", in, "--grafico", "mapa", "--saida", filepath.Join(home, "out"))
	if !strings.Contains(out, "⚠ Aviso:") || !strings.Contains(out, "mapa de calor") {
		t.Fatalf("expected heatmap warning, got:\n%s", out)
	}
}

func TestCLI_SummaryMarksAreColoured(t *testing.T) {
	home := isolateHome(t)
	in := writeGlobalCSV(t, home, 1)
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	out := runCmd(t, "resumo", "--arquivo", in, "--output", filepath.Join(home, "r.txt"))
	if !strings.Contains(out, "\x1b[32m✓") {
		t.Fatalf("expected green mark, got %q", out)
	}
}
