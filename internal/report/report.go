// Package report builds tabular summaries of the loaded datasets and writes
// them as terminal tables or spreadsheets.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/tempviz-cli/internal/dataset"
	"github.com/KaramelBytes/tempviz-cli/internal/stats"
)

// Table is a titled grid of formatted cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// GlobalSummary aggregates the planet-wide table by decade, one column per
// recognized temperature column present in the file.
func GlobalSummary(t *dataset.GlobalTable) Table {
	tbl := Table{Title: "Temperatura global por década", Header: []string{"Década", "Meses"}}

	var cols []string
	for _, c := range []string{dataset.ColLandAverage, dataset.ColLandMin, dataset.ColLandMax, dataset.ColLandOcean} {
		if t.Has(c) {
			cols = append(cols, c)
			tbl.Header = append(tbl.Header, c)
		}
	}

	months := map[int]int{}
	for _, r := range t.Records {
		months[r.Decade()]++
	}
	means := make([]map[int]float64, len(cols))
	for i, c := range cols {
		means[i] = map[int]float64{}
		for _, b := range stats.DecadeMeans(t.Observations(c, "")) {
			means[i][b.Key] = b.Mean
		}
	}
	decades := make([]int, 0, len(months))
	for d := range months {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	for _, d := range decades {
		row := []string{strconv.Itoa(d), strconv.Itoa(months[d])}
		for i := range cols {
			v, ok := means[i][d]
			if !ok {
				v = math.NaN()
			}
			row = append(row, num(v))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

// CountrySummary lists one row per country with its coverage, overall mean
// and mean annual amplitude.
func CountrySummary(t *dataset.CountryTable) Table {
	tbl := Table{
		Title:  "Temperatura por país",
		Header: []string{"País", "Registros", "Primeiro ano", "Último ano", "Média (°C)", "Amplitude média (°C)"},
	}
	for _, c := range t.Countries() {
		obs := t.Observations(c)
		vals := make([]float64, len(obs))
		first, last := obs[0].Year, obs[0].Year
		for i, o := range obs {
			vals[i] = o.Value
			if o.Year < first {
				first = o.Year
			}
			if o.Year > last {
				last = o.Year
			}
		}
		amps := stats.Amplitudes(obs)
		ampVals := make([]float64, len(amps))
		for i, a := range amps {
			ampVals[i] = a.Mean
		}
		tbl.Rows = append(tbl.Rows, []string{
			c,
			strconv.Itoa(len(obs)),
			strconv.Itoa(first),
			strconv.Itoa(last),
			num(stats.Mean(vals)),
			num(stats.Mean(ampVals)),
		})
	}
	return tbl
}

// WriteText renders tables as bordered text tables.
func WriteText(w io.Writer, tables ...Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if t.Title != "" {
			if _, err := fmt.Fprintf(w, "[%s]\n", t.Title); err != nil {
				return err
			}
		}
		tw := tablewriter.NewWriter(w)
		tw.SetHeader(t.Header)
		tw.SetAutoFormatHeaders(false)
		tw.AppendBulk(t.Rows)
		tw.Render()
	}
	return nil
}

// WriteXLSX writes each table to its own sheet of a new workbook at path.
func WriteXLSX(path string, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := sheetName(t.Title, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet: %w", err)
		}
		for c, h := range t.Header {
			if err := setCell(f, sheet, c+1, 1, h); err != nil {
				return err
			}
		}
		for r, row := range t.Rows {
			for c, v := range row {
				var val any = v
				if x, err := strconv.ParseFloat(v, 64); err == nil {
					val = x
				}
				if err := setCell(f, sheet, c+1, r+2, val); err != nil {
					return err
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// sheetName trims a title to Excel's 31 character sheet name limit.
func sheetName(title string, i int) string {
	if title == "" {
		return fmt.Sprintf("Tabela%d", i+1)
	}
	r := []rune(title)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
