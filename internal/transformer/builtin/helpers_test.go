package builtin

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// col is one named column of raw string cells for building test tables.
type col struct {
	name  string
	cells []string
}

// newFrame builds a dataframe of string series from the given columns, the
// same shape the CSV parser produces before any stage runs.
func newFrame(t *testing.T, cols ...col) dataframe.DataFrame {
	t.Helper()
	ss := make([]series.Series, 0, len(cols))
	for _, c := range cols {
		ss = append(ss, series.New(c.cells, series.String, c.name))
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		t.Fatalf("build frame: %v", df.Err)
	}
	return df
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
