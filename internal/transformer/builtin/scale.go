package builtin

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// MinMaxScale rescales every numeric column independently to the [0,1]
// interval using the column's observed minimum and maximum. A zero-variance
// column maps every non-missing value to 0.0 (the documented policy for the
// degenerate case). Missing values stay missing.
//
// The stage is applied to a copy of the clean table to produce the
// normalized output variant; it never feeds back into the clean variant.
type MinMaxScale struct{}

func (MinMaxScale) Name() string { return "min_max_scale" }

func (MinMaxScale) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range schema.NumericColumns() {
		if !frame.HasColumn(df, col) {
			continue
		}
		vals := frame.Floats(df, col)
		valid := frame.NonMissing(vals)
		if len(valid) == 0 {
			continue
		}
		min, max := valid[0], valid[0]
		for _, v := range valid {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		if max == min {
			for i, v := range vals {
				if !math.IsNaN(v) {
					vals[i] = 0
				}
			}
			iss.Add(col+"_zero_variance", 1)
			df = frame.WithFloats(df, col, vals)
			continue
		}

		span := max - min
		for i, v := range vals {
			if !math.IsNaN(v) {
				vals[i] = (v - min) / span
			}
		}
		df = frame.WithFloats(df, col, vals)
	}
	return df, nil
}
