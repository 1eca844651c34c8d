package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/tempviz-cli/internal/stats"
)

// ColAverage is the primary temperature column of the per-country dataset.
const ColAverage = "AverageTemperature"

// CountryRecord is one monthly observation for a single country.
type CountryRecord struct {
	Date               time.Time
	Year               int
	Month              int
	Country            string
	AverageTemperature float64
}

// Decade returns the record's decade bucket.
func (r CountryRecord) Decade() int { return stats.DecadeOf(r.Year) }

// CountryTable is the loaded per-country dataset. Every record carries a
// non-missing AverageTemperature.
type CountryTable struct {
	Source  string
	Records []CountryRecord
}

// Countries returns the distinct country names, sorted.
func (t *CountryTable) Countries() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range t.Records {
		if !seen[r.Country] {
			seen[r.Country] = true
			out = append(out, r.Country)
		}
	}
	sort.Strings(out)
	return out
}

// Has reports whether the table holds at least one row for country.
func (t *CountryTable) Has(country string) bool {
	for _, r := range t.Records {
		if r.Country == country {
			return true
		}
	}
	return false
}

// Observations returns the rows of one country as stats observations.
func (t *CountryTable) Observations(country string) []stats.Observation {
	var out []stats.Observation
	for _, r := range t.Records {
		if r.Country != country {
			continue
		}
		out = append(out, stats.Observation{Year: r.Year, Month: r.Month, Value: r.AverageTemperature})
	}
	return out
}

// LoadCountry reads the per-country CSV at path and drops every row whose
// AverageTemperature is missing.
func LoadCountry(path string) (*CountryTable, error) {
	f, err := readFrame(path, []string{ColAverage})
	if err != nil {
		return nil, err
	}
	if err := requireColumns(f, path, ColDate, ColCountry, ColAverage); err != nil {
		return nil, err
	}
	t := &CountryTable{Source: path}
	if f.rows == 0 {
		return t, nil
	}
	df := f.df
	present := 0
	for _, v := range df.Col(ColAverage).Float() {
		if !math.IsNaN(v) {
			present++
		}
	}
	if present == 0 {
		return t, nil
	}
	if present < df.Nrow() {
		df = df.Filter(dataframe.F{
			Colname:    ColAverage,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool { return !el.IsNA() },
		})
		if df.Err != nil {
			return nil, fmt.Errorf("drop missing temperatures: %w", df.Err)
		}
	}

	f.df, f.rows = df, df.Nrow()
	dates, err := parseDates(f, path)
	if err != nil {
		return nil, err
	}
	countries := df.Col(ColCountry).Records()
	temps := df.Col(ColAverage).Float()
	t.Records = make([]CountryRecord, len(dates))
	for i, d := range dates {
		t.Records[i] = CountryRecord{
			Date:               d,
			Year:               d.Year(),
			Month:              int(d.Month()),
			Country:            countries[i],
			AverageTemperature: temps[i],
		}
	}
	return t, nil
}
