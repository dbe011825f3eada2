// Package frame holds the small set of helpers the cleaning stages share for
// working with gota dataframes: typed column access with explicit
// missing-value semantics, and rendering back to CSV-ready records.
//
// Conventions used across the pipeline:
//
//   - string columns represent a missing value as ""
//   - float columns represent a missing value as NaN
//   - the literals "", "nan", "NaN", "NA", "None" in raw cells all mean
//     missing (artifacts of earlier spreadsheet exports of the dataset)
package frame

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// IsMissing reports whether a raw cell value denotes a missing entry.
func IsMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "nan", "NaN", "NAN", "NA", "None", "null":
		return true
	}
	return false
}

// HasColumn reports whether df contains a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Strings returns the raw string records of a column.
func Strings(df dataframe.DataFrame, name string) []string {
	return df.Col(name).Records()
}

// Floats returns a column as float64 values with NaN for missing or
// unparseable cells. Float series are read directly (NaN already is the
// missing sentinel); going through their string records would truncate values
// to the 6 decimals gota prints. String series are parsed here rather than
// through gota type coercion so that missing-value handling stays
// deterministic.
func Floats(df dataframe.DataFrame, name string) []float64 {
	names := df.Names()
	types := df.Types()
	for i, n := range names {
		if n == name && types[i] == series.Float {
			return df.Col(name).Float()
		}
	}
	recs := df.Col(name).Records()
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = ParseFloat(r)
	}
	return out
}

// ParseFloat converts one raw cell to a float64, NaN when missing or not a
// number.
func ParseFloat(s string) float64 {
	if IsMissing(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FormatFloat renders a float cell for output; NaN becomes the empty string.
// Integral values render without a decimal point.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WithFloats returns a new dataframe where the named column holds the given
// float values. A new column is appended when the name is not present.
func WithFloats(df dataframe.DataFrame, name string, vals []float64) dataframe.DataFrame {
	return df.Mutate(series.New(vals, series.Float, name))
}

// WithStrings returns a new dataframe where the named column holds the given
// string values.
func WithStrings(df dataframe.DataFrame, name string, vals []string) dataframe.DataFrame {
	return df.Mutate(series.New(vals, series.String, name))
}

// NonMissing extracts the non-NaN values of a float column, preserving order.
func NonMissing(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Render converts a dataframe to CSV-ready records: a header row followed by
// one row per record. Float columns are re-rendered through FormatFloat so
// missing values export as empty cells instead of the literal "NaN" and
// integral floats lose the trailing ".000000" gota would print.
func Render(df dataframe.DataFrame) [][]string {
	names := df.Names()
	types := df.Types()
	cols := make([][]string, len(names))
	for i, name := range names {
		if types[i] == series.Float {
			vals := df.Col(name).Float()
			recs := make([]string, len(vals))
			for j, v := range vals {
				recs[j] = FormatFloat(v)
			}
			cols[i] = recs
			continue
		}
		cols[i] = df.Col(name).Records()
	}

	out := make([][]string, 0, df.Nrow()+1)
	out = append(out, names)
	for r := 0; r < df.Nrow(); r++ {
		row := make([]string, len(names))
		for c := range names {
			row[c] = cols[c][r]
		}
		out = append(out, row)
	}
	return out
}
