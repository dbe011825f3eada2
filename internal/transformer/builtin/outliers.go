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

// ClipOutliers bounds extreme values in the age, rating, and duration-like
// columns using the IQR rule: values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]
// are clipped to the nearest bound. The stage runs after imputation, so
// clipping never interacts with missing-value placeholders. Columns with a
// zero interquartile range are left untouched.
type ClipOutliers struct{}

func (ClipOutliers) Name() string { return "clip_outliers" }

const iqrFactor = 1.5

func (ClipOutliers) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range schema.OutlierColumns() {
		if !frame.HasColumn(df, col) {
			continue
		}
		vals := frame.Floats(df, col)
		valid := frame.NonMissing(vals)
		if len(valid) == 0 {
			continue
		}
		sorted := append([]float64(nil), valid...)
		sort.Float64s(sorted)

		q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
		q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
		iqr := q3 - q1
		if iqr == 0 {
			continue
		}
		lower := q1 - iqrFactor*iqr
		upper := q3 + iqrFactor*iqr

		capped := 0
		for i, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			switch {
			case v < lower:
				vals[i] = lower
				capped++
			case v > upper:
				vals[i] = upper
				capped++
			}
		}
		if capped > 0 {
			iss.Add("outliers_capped", capped)
			df = frame.WithFloats(df, col, vals)
		}
	}
	return df, nil
}
