package charts

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/tempviz-cli/internal/utils"
)

// All is the chart key that selects every chart of a catalog.
const All = "Todos"

// ErrUnknownChart is returned when a key is not part of a catalog.
var ErrUnknownChart = errors.New("unknown chart")

// Status is the outcome of one chart.
type Status int

const (
	Rendered Status = iota
	Skipped
)

func (s Status) String() string {
	switch s {
	case Rendered:
		return "rendered"
	case Skipped:
		return "skipped"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result reports what happened to one chart of a run.
type Result struct {
	Key    string
	Title  string
	Status Status
	// Reason is set for skipped charts.
	Reason string
	// Path is set for rendered charts.
	Path string
}

// SkipError signals that a chart cannot be drawn from the loaded data. It is
// reported as a Skipped result and does not stop sibling charts.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

// Skip builds a SkipError with a formatted reason.
func Skip(format string, args ...any) error {
	return &SkipError{Reason: fmt.Sprintf(format, args...)}
}

// Options controls rendering.
type Options struct {
	OutDir string
	// Format is the image extension passed to plot.Save (png when empty).
	Format string
	Width  vg.Length
	Height vg.Length

	// Countries drawn by the per-country time series and distribution charts.
	Countries []string
	// HeatmapCountry is the single country of the month x year heatmap.
	HeatmapCountry string
}

// Chart is one named chart over a dataset of type T.
type Chart[T any] struct {
	Key   string
	Label string
	Title string
	Build func(data T, opt Options) (*plot.Plot, error)
}

// Catalog is an ordered set of charts over the same dataset.
type Catalog[T any] []Chart[T]

// Keys returns All followed by every chart key, in catalog order.
func (c Catalog[T]) Keys() []string {
	keys := []string{All}
	for _, ch := range c {
		keys = append(keys, ch.Key)
	}
	return keys
}

// Lookup finds a chart by key.
func (c Catalog[T]) Lookup(key string) (Chart[T], bool) {
	for _, ch := range c {
		if ch.Key == key {
			return ch, true
		}
	}
	return Chart[T]{}, false
}

// Valid reports whether key selects something in the catalog.
func (c Catalog[T]) Valid(key string) bool {
	if key == All {
		return true
	}
	_, ok := c.Lookup(key)
	return ok
}

// Run renders the chart selected by key (or every chart for All) and returns
// one Result per chart attempted. Skipped charts are results, not errors; any
// other failure stops the run and is returned with the results so far.
func Run[T any](c Catalog[T], key string, data T, opt Options) ([]Result, error) {
	var selected []Chart[T]
	if key == All {
		selected = c
	} else {
		ch, ok := c.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownChart, key, c.Keys())
		}
		selected = []Chart[T]{ch}
	}
	if opt.OutDir == "" {
		opt.OutDir = "."
	}
	if opt.Width <= 0 {
		opt.Width = 12 * vg.Inch
	}
	if opt.Height <= 0 {
		opt.Height = 6 * vg.Inch
	}
	if err := utils.EnsureDir(opt.OutDir); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(selected))
	for _, ch := range selected {
		res := Result{Key: ch.Key, Title: ch.Title}
		p, err := ch.Build(data, opt)
		if err != nil {
			var skip *SkipError
			if errors.As(err, &skip) {
				res.Status = Skipped
				res.Reason = skip.Reason
				results = append(results, res)
				continue
			}
			return results, fmt.Errorf("build %s: %w", ch.Key, err)
		}
		p.Title.Text = ch.Title
		path := utils.ChartFileName(opt.OutDir, ch.Key, opt.Format)
		if err := p.Save(opt.Width, opt.Height, path); err != nil {
			return results, fmt.Errorf("save %s: %w", ch.Key, err)
		}
		res.Status = Rendered
		res.Path = path
		results = append(results, res)
	}
	return results, nil
}
