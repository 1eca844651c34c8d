package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/tempviz-cli/internal/utils"
)

// Column names shared by both datasets.
const (
	ColDate    = "dt"
	ColCountry = "Country"
)

// frame is a CSV read into a dataframe together with its header. A file with
// a header and no data rows has an empty df.
type frame struct {
	header []string
	df     dataframe.DataFrame
	rows   int
}

func (f frame) has(name string) bool {
	for _, n := range f.header {
		if n == name {
			return true
		}
	}
	return false
}

// readFrame opens path and reads it into a dataframe with every column typed
// as string except those listed in numeric, which are read as floats so that
// empty cells become NaN.
func readFrame(path string, numeric []string) (frame, error) {
	if !utils.IsRegularFile(path) {
		return frame{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return frame{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return frame{}, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return frame{}, nil
	}
	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	fr := frame{header: records[0], rows: len(records) - 1}
	if fr.rows == 0 {
		return fr, nil
	}

	types := make(map[string]series.Type, len(numeric))
	for _, c := range numeric {
		types[c] = series.Float
	}
	fr.df = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	if fr.df.Err != nil {
		return frame{}, fmt.Errorf("read csv %s: %w", path, fr.df.Err)
	}
	return fr, nil
}

func requireColumns(f frame, path string, names ...string) error {
	var missing []string
	for _, n := range names {
		if !f.has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: missing column(s) %s", ErrMalformedSchema, path, strings.Join(missing, ", "))
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02", time.RFC3339, "2006/01/02", "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01",
}

// ParseDate parses the date formats accepted in the dt column.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// parseDates converts the dt column, reporting the 1-based data row on failure.
func parseDates(f frame, path string) ([]time.Time, error) {
	if f.rows == 0 {
		return nil, nil
	}
	raw := f.df.Col(ColDate).Records()
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		out[i] = t
	}
	return out, nil
}
