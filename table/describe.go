package table

import "github.com/montanaflynn/stats"

// ColumnSummary holds descriptive statistics for one column.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Describe computes per-column summaries in table order, handy for a
// first look at a dataset before fitting anything to it.
func (t *Table) Describe() []ColumnSummary {
	out := make([]ColumnSummary, len(t.names))
	for i, name := range t.names {
		col := t.cols[i]
		mean, _ := stats.Mean(col)
		sd, _ := stats.StandardDeviation(col)
		min, _ := stats.Min(col)
		max, _ := stats.Max(col)
		median, _ := stats.Median(col)
		out[i] = ColumnSummary{
			Name:   name,
			Count:  len(col),
			Mean:   mean,
			StdDev: sd,
			Min:    min,
			Max:    max,
			Median: median,
		}
	}
	return out
}
