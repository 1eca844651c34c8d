package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/tempviz-cli/internal/stats"
)

// maxLegendEntries caps the legend; charts with more series draw none.
const maxLegendEntries = 20

func newPlot(xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func hexColor(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

func withAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

// seriesColor picks a stable palette colour for the i-th series.
func seriesColor(i int) color.Color { return plotutil.Color(i) }

// xyPoints builds plot points from parallel slices, dropping NaN pairs
// (plotter constructors reject them).
func xyPoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

func bucketPoints(buckets []stats.Bucket) plotter.XYs {
	pts := make(plotter.XYs, 0, len(buckets))
	for _, b := range buckets {
		if math.IsNaN(b.Mean) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(b.Key), Y: b.Mean})
	}
	return pts
}

// addLine adds a coloured line and, when label is non-empty, a legend entry.
func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, label string) error {
	if len(pts) == 0 {
		return nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

// addBand fills the area between lower and upper, both indexed like xs.
func addBand(p *plot.Plot, xs, lower, upper []float64, c color.Color) error {
	var top, bottom plotter.XYs
	for i := range xs {
		if math.IsNaN(lower[i]) || math.IsNaN(upper[i]) {
			continue
		}
		top = append(top, plotter.XY{X: xs[i], Y: upper[i]})
		bottom = append(bottom, plotter.XY{X: xs[i], Y: lower[i]})
	}
	if len(top) < 2 {
		return nil
	}
	ring := make(plotter.XYs, 0, 2*len(top))
	ring = append(ring, top...)
	for i := len(bottom) - 1; i >= 0; i-- {
		ring = append(ring, bottom[i])
	}
	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return err
	}
	poly.Color = withAlpha(c, 50)
	poly.LineStyle.Width = 0
	p.Add(poly)
	return nil
}

// fractionalYear places a month inside its year on a continuous axis.
func fractionalYear(year, month int) float64 {
	return float64(year) + float64(month-1)/12
}
