package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Season is a fixed month band, independent of hemisphere.
type Season string

const (
	Spring Season = "Primavera"
	Summer Season = "Verão"
	Autumn Season = "Outono"
	Winter Season = "Inverno"
)

// Seasons lists the bands in display order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

// SeasonOf maps a calendar month (1-12) to its season band.
func SeasonOf(month int) Season {
	switch {
	case month >= 3 && month <= 5:
		return Spring
	case month >= 6 && month <= 8:
		return Summer
	case month >= 9 && month <= 11:
		return Autumn
	default:
		return Winter
	}
}

// DecadeOf truncates a year down to the nearest multiple of ten.
func DecadeOf(year int) int {
	d := year / 10
	if year%10 != 0 && year < 0 {
		d--
	}
	return d * 10
}

// Observation is one dated measurement. Value and Uncertainty are NaN when missing.
type Observation struct {
	Year        int
	Month       int
	Value       float64
	Uncertainty float64
}

// Bucket is an aggregate for one integer key (year or decade).
type Bucket struct {
	Key   int
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// SeasonalMean is the (year, season) aggregate used by the seasonal chart.
type SeasonalMean struct {
	Year        int
	Season      Season
	Mean        float64
	Uncertainty float64
}

// Finite drops NaN and infinite values.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Mean is the NaN-skipping arithmetic mean; NaN when nothing is left.
func Mean(values []float64) float64 {
	f := Finite(values)
	if len(f) == 0 {
		return math.NaN()
	}
	return stat.Mean(f, nil)
}

// SeasonalMeans groups observations with a non-missing Value by (year, season).
func SeasonalMeans(obs []Observation) []SeasonalMean {
	type key struct {
		year   int
		season Season
	}
	vals := map[key][]float64{}
	unc := map[key][]float64{}
	for _, o := range obs {
		if math.IsNaN(o.Value) {
			continue
		}
		k := key{o.Year, SeasonOf(o.Month)}
		vals[k] = append(vals[k], o.Value)
		unc[k] = append(unc[k], o.Uncertainty)
	}
	out := make([]SeasonalMean, 0, len(vals))
	for k, v := range vals {
		out = append(out, SeasonalMean{
			Year:        k.year,
			Season:      k.season,
			Mean:        stat.Mean(v, nil),
			Uncertainty: Mean(unc[k]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return seasonRank(out[i].Season) < seasonRank(out[j].Season)
	})
	return out
}

func seasonRank(s Season) int {
	for i, v := range Seasons {
		if v == s {
			return i
		}
	}
	return len(Seasons)
}

// YearlyMeans aggregates non-missing values by year.
func YearlyMeans(obs []Observation) []Bucket {
	return group(obs, func(o Observation) int { return o.Year })
}

// DecadeMeans aggregates non-missing values by decade bucket.
func DecadeMeans(obs []Observation) []Bucket {
	return group(obs, func(o Observation) int { return DecadeOf(o.Year) })
}

// Amplitudes returns, per year, the spread between the warmest and coldest value.
// Min and Max of each bucket are kept; Mean holds the amplitude.
func Amplitudes(obs []Observation) []Bucket {
	out := YearlyMeans(obs)
	for i := range out {
		out[i].Mean = out[i].Max - out[i].Min
	}
	return out
}

func group(obs []Observation, keyOf func(Observation) int) []Bucket {
	vals := map[int][]float64{}
	for _, o := range obs {
		if math.IsNaN(o.Value) {
			continue
		}
		k := keyOf(o)
		vals[k] = append(vals[k], o.Value)
	}
	out := make([]Bucket, 0, len(vals))
	for k, v := range vals {
		out = append(out, Bucket{
			Key:   k,
			Count: len(v),
			Mean:  stat.Mean(v, nil),
			Min:   floats.Min(v),
			Max:   floats.Max(v),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Rolling computes a trailing moving average over window positions. NaN values
// count as missing; a position yields NaN until minPeriods non-missing values
// fall inside its window.
func Rolling(values []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(values))
	if minPeriods <= 0 {
		minPeriods = 1
	}
	var sum float64
	var n int
	for i, v := range values {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
		if j := i - window; window > 0 && j >= 0 && !math.IsNaN(values[j]) {
			sum -= values[j]
			n--
		}
		if window <= 0 || n < minPeriods {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Grid is a year x month pivot of mean values. Cells without data are NaN.
type Grid struct {
	Years  []int
	Values [][12]float64
}

// MonthlyGrid pivots observations into one row per year and one column per month.
func MonthlyGrid(obs []Observation) Grid {
	type key struct{ year, month int }
	vals := map[key][]float64{}
	years := map[int]bool{}
	for _, o := range obs {
		if math.IsNaN(o.Value) || o.Month < 1 || o.Month > 12 {
			continue
		}
		vals[key{o.Year, o.Month}] = append(vals[key{o.Year, o.Month}], o.Value)
		years[o.Year] = true
	}
	g := Grid{}
	for y := range years {
		g.Years = append(g.Years, y)
	}
	sort.Ints(g.Years)
	g.Values = make([][12]float64, len(g.Years))
	for i, y := range g.Years {
		for m := 1; m <= 12; m++ {
			v, ok := vals[key{y, m}]
			if !ok {
				g.Values[i][m-1] = math.NaN()
				continue
			}
			g.Values[i][m-1] = stat.Mean(v, nil)
		}
	}
	return g
}

// Density estimates a Gaussian kernel density using Scott's bandwidth and
// evaluates it on points equally spaced positions extending three bandwidths
// past the data range. It returns nil slices when the sample has fewer than
// two finite values or no spread.
func Density(values []float64, points int) (xs, ys []float64) {
	data := Finite(values)
	if len(data) < 2 || points < 2 {
		return nil, nil
	}
	sd := stat.StdDev(data, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil, nil
	}
	bw := sd * math.Pow(float64(len(data)), -1.0/5.0)
	lo := floats.Min(data) - 3*bw
	hi := floats.Max(data) + 3*bw
	xs = make([]float64, points)
	floats.Span(xs, lo, hi)
	ys = make([]float64, points)
	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	n := float64(len(data))
	for i, x := range xs {
		var s float64
		for _, d := range data {
			s += kernel.Prob(x - d)
		}
		ys[i] = s / n
	}
	return xs, ys
}
