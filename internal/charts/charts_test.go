package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
)

func writeCSV(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		OutDir:         t.TempDir(),
		Width:          4 * vg.Inch,
		Height:         3 * vg.Inch,
		Countries:      []string{"Brazil", "Chile"},
		HeatmapCountry: "Brazil",
	}
}

// globalRows builds monthly rows from 1990 through years-1 with the given header.
func globalRows(header string, years int, row func(y, m int) string) []string {
	rows := []string{header}
	for y := 0; y < years; y++ {
		for m := 1; m <= 12; m++ {
			rows = append(rows, fmt.Sprintf("%04d-%02d-01,%s", 1990+y, m, row(y, m)))
		}
	}
	return rows
}

func countryRows(countries []string, years int) []string {
	rows := []string{"dt,AverageTemperature,AverageTemperatureUncertainty,Country"}
	for ci, c := range countries {
		for y := 0; y < years; y++ {
			for m := 1; m <= 12; m++ {
				rows = append(rows, fmt.Sprintf("%04d-%02d-01,%.2f,0.3,%s", 1990+y, m, float64(10*ci+m)+0.1*float64(y), c))
			}
		}
	}
	return rows
}

func TestRunUnknownKey(t *testing.T) {
	tbl := &dataset.GlobalTable{Columns: []string{"date"}}
	_, err := Run(GlobalCharts, "pizza", tbl, testOptions(t))
	if !errors.Is(err, ErrUnknownChart) {
		t.Fatalf("err = %v, want ErrUnknownChart", err)
	}
}

func TestGlobalChartsRenderAll(t *testing.T) {
	path := writeCSV(t, globalRows(
		"dt,LandAverageTemperature,LandAverageTemperatureUncertainty,LandAndOceanAverageTemperature",
		12,
		func(y, m int) string {
			return fmt.Sprintf("%.2f,0.4,%.2f", 8+float64(m)+0.05*float64(y), 15+0.5*float64(m))
		},
	))
	tbl, err := dataset.LoadGlobal(path)
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	opt := testOptions(t)
	results, err := Run(GlobalCharts, All, tbl, opt)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(GlobalCharts) {
		t.Fatalf("results = %d, want %d", len(results), len(GlobalCharts))
	}
	for _, r := range results {
		if r.Status != Rendered {
			t.Fatalf("%s: status %s (%s)", r.Key, r.Status, r.Reason)
		}
		if _, err := os.Stat(r.Path); err != nil {
			t.Fatalf("%s: missing output: %v", r.Key, err)
		}
		if filepath.Dir(r.Path) != opt.OutDir {
			t.Fatalf("%s: written outside OutDir: %s", r.Key, r.Path)
		}
	}
}

func TestGlobalChartsSkipMissingOptionalColumns(t *testing.T) {
	path := writeCSV(t, globalRows("dt,LandMinTemperature", 1, func(_, m int) string {
		return fmt.Sprintf("%d.0", m)
	}))
	tbl, err := dataset.LoadGlobal(path)
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	for _, key := range []string{"sazonal", "media_movel", "comparacao", "decadas"} {
		results, err := Run(GlobalCharts, key, tbl, testOptions(t))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", key, err)
		}
		if len(results) != 1 || results[0].Status != Skipped {
			t.Fatalf("%s: results = %+v", key, results)
		}
		if !strings.Contains(results[0].Reason, dataset.ColLandAverage) {
			t.Fatalf("%s: reason should name the column: %q", key, results[0].Reason)
		}
	}
}

func TestGlobalPartialSkipDoesNotStopSiblings(t *testing.T) {
	// No uncertainty and no land+ocean columns: sazonal and comparacao skip,
	// media_movel and decadas still render.
	path := writeCSV(t, globalRows("dt,LandAverageTemperature", 6, func(y, m int) string {
		return fmt.Sprintf("%.1f", float64(m)+float64(y))
	}))
	tbl, err := dataset.LoadGlobal(path)
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	results, err := Run(GlobalCharts, All, tbl, testOptions(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]Status{
		"sazonal":     Skipped,
		"media_movel": Rendered,
		"comparacao":  Skipped,
		"decadas":     Rendered,
	}
	for _, r := range results {
		if r.Status != want[r.Key] {
			t.Fatalf("%s: status %s, want %s (%s)", r.Key, r.Status, want[r.Key], r.Reason)
		}
	}
}

func TestCountryChartsRenderAll(t *testing.T) {
	tbl, err := dataset.LoadCountry(writeCSV(t, countryRows([]string{"Brazil", "Chile", "Peru"}, 3)))
	if err != nil {
		t.Fatalf("LoadCountry: %v", err)
	}
	results, err := Run(CountryCharts, All, tbl, testOptions(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(CountryCharts) {
		t.Fatalf("results = %d", len(results))
	}
	for _, r := range results {
		if r.Status != Rendered {
			t.Fatalf("%s: status %s (%s)", r.Key, r.Status, r.Reason)
		}
	}
}

func TestHeatmapSkipsWithoutBrazil(t *testing.T) {
	tbl, err := dataset.LoadCountry(writeCSV(t, countryRows([]string{"Chile"}, 2)))
	if err != nil {
		t.Fatalf("LoadCountry: %v", err)
	}
	results, err := Run(CountryCharts, "mapa", tbl, testOptions(t))
	if err != nil {
		t.Fatalf("mapa must not fail: %v", err)
	}
	if len(results) != 1 || results[0].Status != Skipped {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[0].Reason, "Brazil") {
		t.Fatalf("reason = %q", results[0].Reason)
	}
}

func TestCatalogKeys(t *testing.T) {
	keys := CountryCharts.Keys()
	want := []string{All, "evolucao", "decada", "amplitude", "distribuicao", "mapa"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	if !GlobalCharts.Valid(All) || !GlobalCharts.Valid("decadas") || GlobalCharts.Valid("mapa") {
		t.Fatalf("Valid mismatch")
	}
}

func TestSkipErrorMessage(t *testing.T) {
	err := Skip("coluna '%s' ausente", "x")
	var se *SkipError
	if !errors.As(err, &se) || se.Reason != "coluna 'x' ausente" {
		t.Fatalf("unexpected skip error: %#v", err)
	}
	if Skipped.String() != "skipped" || Rendered.String() != "rendered" {
		t.Fatalf("status strings")
	}
}
