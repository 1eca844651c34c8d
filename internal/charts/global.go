package charts

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
	"github.com/KaramelBytes/tempviz-cli/internal/stats"
)

// Rolling windows, in months.
const (
	decadeWindow     = 120
	decadeMinPeriods = 60
	yearWindow       = 12
	yearMinPeriods   = 6
)

var seasonColors = map[stats.Season]color.Color{
	stats.Spring: hexColor(0x2c, 0xa0, 0x2c),
	stats.Summer: hexColor(0xff, 0x7f, 0x0e),
	stats.Autumn: hexColor(0xd6, 0x27, 0x28),
	stats.Winter: hexColor(0x1f, 0x77, 0xb4),
}

// GlobalCharts is the catalog of the planet-wide temperature script.
var GlobalCharts = Catalog[*dataset.GlobalTable]{
	{Key: "sazonal", Label: "Sazonal com Incerteza", Title: "Temperaturas Sazonais da Terra com Incerteza", Build: seasonalChart},
	{Key: "media_movel", Label: "Média Móvel 10 Anos", Title: "Média Móvel de 10 Anos da Temperatura Média Global da Terra", Build: rollingDecadeChart},
	{Key: "comparacao", Label: "Terra vs Terra+Oceano", Title: "Média Móvel de 12 Meses: Terra vs Terra+Oceano", Build: landVsOceanChart},
	{Key: "decadas", Label: "Décadas", Title: "Temperatura Média Global por Década", Build: decadeBarChart},
}

func requireGlobal(t *dataset.GlobalTable, chart string, cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return Skip("coluna '%s' não encontrada. Pulando %s.", c, chart)
		}
	}
	return nil
}

func seasonalChart(t *dataset.GlobalTable, _ Options) (*plot.Plot, error) {
	if err := requireGlobal(t, "gráfico sazonal", dataset.ColLandAverage, dataset.ColLandAverageUncertainty); err != nil {
		return nil, err
	}
	groups := stats.SeasonalMeans(t.Observations(dataset.ColLandAverage, dataset.ColLandAverageUncertainty))
	if len(groups) == 0 {
		return nil, Skip("sem valores de '%s'. Pulando gráfico sazonal.", dataset.ColLandAverage)
	}

	p := newPlot("Ano", "Temperatura (°C)")
	for _, season := range stats.Seasons {
		var xs, ys, lo, hi []float64
		for _, g := range groups {
			if g.Season != season {
				continue
			}
			xs = append(xs, float64(g.Year))
			ys = append(ys, g.Mean)
			lo = append(lo, g.Mean-g.Uncertainty)
			hi = append(hi, g.Mean+g.Uncertainty)
		}
		if len(xs) == 0 {
			continue
		}
		c := seasonColors[season]
		if err := addBand(p, xs, lo, hi, c); err != nil {
			return nil, err
		}
		if err := addLine(p, xyPoints(xs, ys), c, "Média de "+string(season)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func rollingDecadeChart(t *dataset.GlobalTable, _ Options) (*plot.Plot, error) {
	if err := requireGlobal(t, "média móvel", dataset.ColLandAverage); err != nil {
		return nil, err
	}
	var xs, vals []float64
	for _, r := range t.Records {
		if math.IsNaN(r.LandAverage) {
			continue
		}
		xs = append(xs, fractionalYear(r.Year, r.Month))
		vals = append(vals, r.LandAverage)
	}
	pts := xyPoints(xs, stats.Rolling(vals, decadeWindow, decadeMinPeriods))
	if len(pts) == 0 {
		return nil, Skip("dados insuficientes para a média móvel de 10 anos (mínimo %d meses).", decadeMinPeriods)
	}
	p := newPlot("Ano", "Temperatura (°C)")
	if err := addLine(p, pts, seriesColor(0), ""); err != nil {
		return nil, err
	}
	return p, nil
}

func landVsOceanChart(t *dataset.GlobalTable, _ Options) (*plot.Plot, error) {
	if !t.Has(dataset.ColLandAverage) || !t.Has(dataset.ColLandOcean) {
		return nil, Skip("colunas '%s' ou '%s' não encontradas. Pulando comparação.", dataset.ColLandAverage, dataset.ColLandOcean)
	}
	var xs, land, ocean []float64
	for _, r := range t.Records {
		if math.IsNaN(r.LandAverage) || math.IsNaN(r.LandOcean) {
			continue
		}
		xs = append(xs, fractionalYear(r.Year, r.Month))
		land = append(land, r.LandAverage)
		ocean = append(ocean, r.LandOcean)
	}
	landPts := xyPoints(xs, stats.Rolling(land, yearWindow, yearMinPeriods))
	oceanPts := xyPoints(xs, stats.Rolling(ocean, yearWindow, yearMinPeriods))
	if len(landPts) == 0 {
		return nil, Skip("dados insuficientes para a comparação (mínimo %d meses com ambas as colunas).", yearMinPeriods)
	}
	p := newPlot("Ano", "Temperatura (°C)")
	if err := addLine(p, landPts, seriesColor(0), "Terra"); err != nil {
		return nil, err
	}
	if err := addLine(p, oceanPts, seriesColor(1), "Terra+Oceano"); err != nil {
		return nil, err
	}
	return p, nil
}

func decadeBarChart(t *dataset.GlobalTable, _ Options) (*plot.Plot, error) {
	if err := requireGlobal(t, "gráfico por década", dataset.ColLandAverage); err != nil {
		return nil, err
	}
	buckets := stats.DecadeMeans(t.Observations(dataset.ColLandAverage, ""))
	if len(buckets) == 0 {
		return nil, Skip("sem valores de '%s'. Pulando gráfico por década.", dataset.ColLandAverage)
	}
	values := make(plotter.Values, len(buckets))
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = b.Mean
		labels[i] = strconv.Itoa(b.Key)
	}
	p := newPlot("Década", "Temperatura (°C)")
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, err
	}
	bars.Color = hexColor(0xfa, 0x80, 0x72)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}
