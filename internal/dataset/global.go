package dataset

import (
	"math"
	"time"

	"github.com/KaramelBytes/tempviz-cli/internal/stats"
)

// Recognized columns of the planet-wide dataset.
const (
	ColLandAverage            = "LandAverageTemperature"
	ColLandMin                = "LandMinTemperature"
	ColLandMax                = "LandMaxTemperature"
	ColLandAverageUncertainty = "LandAverageTemperatureUncertainty"
	ColLandOcean              = "LandAndOceanAverageTemperature"
	ColLandOceanUncertainty   = "LandAndOceanAverageTemperatureUncertainty"
)

// GlobalColumns lists the recognized temperature columns in canonical order.
var GlobalColumns = []string{
	ColLandAverage, ColLandMin, ColLandMax,
	ColLandAverageUncertainty,
	ColLandOcean, ColLandOceanUncertainty,
}

// GlobalRecord is one monthly planet-wide observation. Temperature fields are
// NaN when the cell is empty or the column is absent from the file.
type GlobalRecord struct {
	Date  time.Time
	Year  int
	Month int

	LandAverage            float64
	LandAverageUncertainty float64
	LandMin                float64
	LandMax                float64
	LandOcean              float64
	LandOceanUncertainty   float64
}

// Season returns the record's season band.
func (r GlobalRecord) Season() stats.Season { return stats.SeasonOf(r.Month) }

// Decade returns the record's decade bucket.
func (r GlobalRecord) Decade() int { return stats.DecadeOf(r.Year) }

// Value returns the field backing a recognized column, or NaN.
func (r GlobalRecord) Value(column string) float64 {
	switch column {
	case ColLandAverage:
		return r.LandAverage
	case ColLandAverageUncertainty:
		return r.LandAverageUncertainty
	case ColLandMin:
		return r.LandMin
	case ColLandMax:
		return r.LandMax
	case ColLandOcean:
		return r.LandOcean
	case ColLandOceanUncertainty:
		return r.LandOceanUncertainty
	}
	return math.NaN()
}

// GlobalTable is the loaded planet-wide dataset.
type GlobalTable struct {
	Source string
	// Columns holds "date" followed by the recognized columns present in the file.
	Columns []string
	Records []GlobalRecord
}

// Has reports whether a recognized column was present in the source file.
func (t *GlobalTable) Has(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Observations projects one temperature column, optionally paired with an
// uncertainty column (pass "" for none).
func (t *GlobalTable) Observations(column, uncertainty string) []stats.Observation {
	out := make([]stats.Observation, len(t.Records))
	for i, r := range t.Records {
		u := math.NaN()
		if uncertainty != "" {
			u = r.Value(uncertainty)
		}
		out[i] = stats.Observation{Year: r.Year, Month: r.Month, Value: r.Value(column), Uncertainty: u}
	}
	return out
}

// LoadGlobal reads the planet-wide CSV at path. Only dt is mandatory; every
// other recognized column is kept when present and unknown columns are dropped.
// Rows are kept even when temperatures are missing.
func LoadGlobal(path string) (*GlobalTable, error) {
	f, err := readFrame(path, GlobalColumns)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(f, path, ColDate); err != nil {
		return nil, err
	}
	dates, err := parseDates(f, path)
	if err != nil {
		return nil, err
	}

	t := &GlobalTable{Source: path, Columns: []string{"date"}}
	cols := map[string][]float64{}
	for _, c := range GlobalColumns {
		if !f.has(c) {
			continue
		}
		t.Columns = append(t.Columns, c)
		if f.rows > 0 {
			cols[c] = f.df.Col(c).Float()
		}
	}
	pick := func(c string, i int) float64 {
		if v, ok := cols[c]; ok {
			return v[i]
		}
		return math.NaN()
	}

	t.Records = make([]GlobalRecord, len(dates))
	for i, d := range dates {
		t.Records[i] = GlobalRecord{
			Date:                   d,
			Year:                   d.Year(),
			Month:                  int(d.Month()),
			LandAverage:            pick(ColLandAverage, i),
			LandAverageUncertainty: pick(ColLandAverageUncertainty, i),
			LandMin:                pick(ColLandMin, i),
			LandMax:                pick(ColLandMax, i),
			LandOcean:              pick(ColLandOcean, i),
			LandOceanUncertainty:   pick(ColLandOceanUncertainty, i),
		}
	}
	return t, nil
}
