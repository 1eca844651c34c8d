package charts

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
	"github.com/KaramelBytes/tempviz-cli/internal/stats"
)

const densityPoints = 200

// CountryCharts is the catalog of the per-country temperature script.
var CountryCharts = Catalog[*dataset.CountryTable]{
	{Key: "evolucao", Label: "Evolução por País", Title: "1. Evolução da Temperatura Média por País (Celsius)", Build: countryEvolutionChart},
	{Key: "decada", Label: "Temperatura por Década", Title: "2. Temperatura Média por Década (Celsius)", Build: countryDecadeChart},
	{Key: "amplitude", Label: "Amplitude Térmica", Title: "3. Amplitude Térmica Anual por País", Build: amplitudeChart},
	{Key: "distribuicao", Label: "Distribuição Países", Title: "4. Distribuição de Temperaturas Médias por País", Build: distributionChart},
	{Key: "mapa", Label: "Mapa de Calor Brasil", Title: "5. Mapa de Calor: Temperatura Média no Brasil (Ano × Mês)", Build: heatmapChart},
}

// presentCountries keeps the configured countries that have rows in t.
func presentCountries(t *dataset.CountryTable, wanted []string) []string {
	var out []string
	for _, c := range wanted {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// perCountryLines draws one line per country from the buckets produced by agg.
func perCountryLines(t *dataset.CountryTable, countries []string, agg func([]stats.Observation) []stats.Bucket, p *plot.Plot) error {
	legend := len(countries) <= maxLegendEntries
	for i, c := range countries {
		label := ""
		if legend {
			label = c
		}
		if err := addLine(p, bucketPoints(agg(t.Observations(c))), seriesColor(i), label); err != nil {
			return err
		}
	}
	return nil
}

func countryEvolutionChart(t *dataset.CountryTable, opt Options) (*plot.Plot, error) {
	countries := presentCountries(t, opt.Countries)
	if len(countries) == 0 {
		return nil, Skip("nenhum dos países selecionados está no CSV. Pulando evolução por país.")
	}
	p := newPlot("Ano", "Temperatura Média (°C)")
	if err := perCountryLines(t, countries, stats.YearlyMeans, p); err != nil {
		return nil, err
	}
	return p, nil
}

func countryDecadeChart(t *dataset.CountryTable, _ Options) (*plot.Plot, error) {
	countries := t.Countries()
	if len(countries) == 0 {
		return nil, Skip("CSV sem registros de temperatura. Pulando gráfico por década.")
	}
	p := newPlot("Década", "Temperatura Média (°C)")
	if err := perCountryLines(t, countries, stats.DecadeMeans, p); err != nil {
		return nil, err
	}
	return p, nil
}

func amplitudeChart(t *dataset.CountryTable, _ Options) (*plot.Plot, error) {
	countries := t.Countries()
	if len(countries) == 0 {
		return nil, Skip("CSV sem registros de temperatura. Pulando amplitude térmica.")
	}
	p := newPlot("Ano", "Amplitude (°C)")
	if err := perCountryLines(t, countries, stats.Amplitudes, p); err != nil {
		return nil, err
	}
	return p, nil
}

func distributionChart(t *dataset.CountryTable, opt Options) (*plot.Plot, error) {
	countries := presentCountries(t, opt.Countries)
	if len(countries) == 0 {
		return nil, Skip("nenhum dos países selecionados está no CSV. Pulando distribuição.")
	}
	p := newPlot("Temperatura Média (°C)", "Densidade")
	drawn := 0
	for i, c := range countries {
		obs := t.Observations(c)
		vals := make([]float64, len(obs))
		for j, o := range obs {
			vals[j] = o.Value
		}
		xs, ys := stats.Density(vals, densityPoints)
		if xs == nil {
			continue
		}
		zero := make([]float64, len(xs))
		col := seriesColor(i)
		if err := addBand(p, xs, zero, ys, col); err != nil {
			return nil, err
		}
		if err := addLine(p, xyPoints(xs, ys), col, c); err != nil {
			return nil, err
		}
		drawn++
	}
	if drawn == 0 {
		return nil, Skip("amostras insuficientes para estimar a densidade. Pulando distribuição.")
	}
	return p, nil
}

func heatmapChart(t *dataset.CountryTable, opt Options) (*plot.Plot, error) {
	country := opt.HeatmapCountry
	if country == "" {
		country = "Brazil"
	}
	if !t.Has(country) {
		return nil, Skip("não há dados de %s neste CSV. Pulando mapa de calor.", country)
	}
	g := monthGrid{stats.MonthlyGrid(t.Observations(country))}
	p := newPlot("Mês", "Ano")
	p.Legend.Top = false
	p.Add(plotter.NewHeatMap(g, palette.Heat(12, 1)))
	return p, nil
}

// monthGrid adapts a year x month pivot to plotter.GridXYZ, with months on
// the X axis and years on the Y axis.
type monthGrid struct {
	stats.Grid
}

func (g monthGrid) Dims() (c, r int)   { return 12, len(g.Years) }
func (g monthGrid) Z(c, r int) float64 { return g.Values[r][c] }
func (g monthGrid) X(c int) float64    { return float64(c + 1) }
func (g monthGrid) Y(r int) float64    { return float64(g.Years[r]) }

// Min and Max bound the colour scale over finite cells; the heatmap uses
// them instead of scanning the grid itself.
func (g monthGrid) Min() float64 {
	lo, _ := g.bounds()
	return lo
}

func (g monthGrid) Max() float64 {
	_, hi := g.bounds()
	return hi
}

func (g monthGrid) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}
