package builtin

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// Impute fills remaining missing values with data-type aware strategies,
// computed once over the full table (global, not per-group):
//
//   - minute-denominated columns and the delivery duration: column median
//   - other numeric columns: column mean
//   - categorical columns and the cleaned date: column mode
//
// The cleaned HH:MM strings are regenerated from the imputed minute values so
// the (string, minutes) pair stays consistent. Every substitution increments
// the column's issue counter.
type Impute struct{}

func (Impute) Name() string { return "impute" }

func (Impute) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range schema.MinuteColumns() {
		if !frame.HasColumn(df, col) {
			continue
		}
		df = fillNumeric(df, col, median, iss)
	}
	for _, col := range schema.MeanImputedColumns() {
		if !frame.HasColumn(df, col) {
			continue
		}
		df = fillNumeric(df, col, func(valid []float64) float64 {
			return stat.Mean(valid, nil)
		}, iss)
	}

	modeCols := append(schema.CategoricalColumns(), schema.ColOrderDateClean)
	for _, col := range modeCols {
		if !frame.HasColumn(df, col) {
			continue
		}
		df = fillMode(df, col, iss)
	}

	// Regenerate the cleaned time strings wherever the minute twin was just
	// imputed, so "11:00" and 660 never disagree.
	for _, pair := range [][2]string{
		{schema.ColTimeOrderedClean, schema.ColTimeOrderedMinutes},
		{schema.ColTimePickedClean, schema.ColTimePickedMinutes},
	} {
		cleanCol, minCol := pair[0], pair[1]
		if !frame.HasColumn(df, cleanCol) || !frame.HasColumn(df, minCol) {
			continue
		}
		clean := frame.Strings(df, cleanCol)
		minutes := frame.Floats(df, minCol)
		changed := false
		for i := range clean {
			if frame.IsMissing(clean[i]) && !math.IsNaN(minutes[i]) {
				clean[i] = formatMinutes(int(math.Round(minutes[i])))
				changed = true
			}
		}
		if changed {
			df = frame.WithStrings(df, cleanCol, clean)
		}
	}

	return df, nil
}

func median(valid []float64) float64 {
	sorted := append([]float64(nil), valid...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}

// fillNumeric replaces NaN cells with fill(valid values). Columns with no
// valid values are left alone.
func fillNumeric(df dataframe.DataFrame, col string, fill func([]float64) float64, iss *report.Issues) dataframe.DataFrame {
	vals := frame.Floats(df, col)
	valid := frame.NonMissing(vals)
	if len(valid) == 0 || len(valid) == len(vals) {
		return df
	}
	v := fill(valid)
	filled := 0
	for i := range vals {
		if math.IsNaN(vals[i]) {
			vals[i] = v
			filled++
		}
	}
	iss.Add(col+"_missing_filled", filled)
	return frame.WithFloats(df, col, vals)
}

// fillMode replaces missing cells with the most frequent value; ties break
// towards the lexicographically smaller value for determinism.
func fillMode(df dataframe.DataFrame, col string, iss *report.Issues) dataframe.DataFrame {
	recs := frame.Strings(df, col)
	counts := map[string]int{}
	for _, v := range recs {
		if !frame.IsMissing(v) {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return df
	}
	mode, best := "", 0
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	filled := 0
	for i, v := range recs {
		if frame.IsMissing(v) {
			recs[i] = mode
			filled++
		}
	}
	if filled == 0 {
		return df
	}
	iss.Add(col+"_missing_filled", filled)
	return frame.WithStrings(df, col, recs)
}
