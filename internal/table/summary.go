package table

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one numeric column.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary computes per-column statistics for every fully numeric column.
// Columns with any non-numeric cell are skipped, which keeps identifier and
// timestamp columns out of the way without any schema knowledge.
func (t *Table) Summary() []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(t.Columns))

	for idx, name := range t.Columns {
		values := make([]float64, 0, len(t.Rows))
		numeric := true
		for _, row := range t.Rows {
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				numeric = false
				break
			}
			values = append(values, v)
		}
		if !numeric || len(values) == 0 {
			continue
		}

		summaries = append(summaries, ColumnSummary{
			Column: name,
			Count:  len(values),
			Mean:   stat.Mean(values, nil),
			StdDev: stat.StdDev(values, nil),
			Min:    floats.Min(values),
			Max:    floats.Max(values),
		})
	}

	return summaries
}

// FormatSummaries renders summaries as a fixed-width text block for
// terminal output.
func FormatSummaries(summaries []ColumnSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %8s %12s %12s %12s %12s\n", "column", "count", "mean", "stddev", "min", "max")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%-24s %8d %12.4f %12.4f %12.4f %12.4f\n",
			s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return b.String()
}
