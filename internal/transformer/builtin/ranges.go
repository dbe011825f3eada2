package builtin

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// EnforceRanges casts the numeric columns to float series and repairs the
// profiled validation rules: courier ages outside [18,60], ratings outside
// [1,5], and multiple_deliveries values outside {0,1,2,3} all become missing.
// Values are nulled, never clamped; clamping is the outlier stage's job and
// only within observed distributions.
type EnforceRanges struct{}

func (EnforceRanges) Name() string { return "enforce_ranges" }

func (EnforceRanges) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	// Cast every raw numeric column first so unparseable cells are already
	// missing before the interval checks run.
	for _, col := range []string{
		schema.ColAge, schema.ColRating,
		schema.ColRestaurantLat, schema.ColRestaurantLon,
		schema.ColDeliveryLat, schema.ColDeliveryLon,
		schema.ColVehicleCondition, schema.ColMultipleDeliveries,
		schema.ColTimeTaken,
	} {
		if !frame.HasColumn(df, col) {
			continue
		}
		df = frame.WithFloats(df, col, frame.Floats(df, col))
	}

	if frame.HasColumn(df, schema.ColAge) {
		df = nullOutsideRange(df, schema.ColAge, schema.AgeRange, iss)
	}
	if frame.HasColumn(df, schema.ColRating) {
		df = nullOutsideRange(df, schema.ColRating, schema.RatingRange, iss)
	}
	if frame.HasColumn(df, schema.ColMultipleDeliveries) {
		vals := frame.Floats(df, schema.ColMultipleDeliveries)
		nulled := 0
		for i, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			if _, ok := schema.AllowedDeliveries[v]; !ok {
				vals[i] = math.NaN()
				nulled++
			}
		}
		iss.Add(schema.ColMultipleDeliveries+"_out_of_range", nulled)
		df = frame.WithFloats(df, schema.ColMultipleDeliveries, vals)
	}

	return df, nil
}

func nullOutsideRange(df dataframe.DataFrame, col string, r schema.Range, iss *report.Issues) dataframe.DataFrame {
	vals := frame.Floats(df, col)
	nulled := 0
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if !r.Contains(v) {
			vals[i] = math.NaN()
			nulled++
		}
	}
	iss.Add(col+"_out_of_range", nulled)
	return frame.WithFloats(df, col, vals)
}

// ScrubCoordinates replaces exact-zero latitude/longitude values with
// missing. A zero coordinate in this dataset is a placeholder for "unknown",
// not a position in the Gulf of Guinea.
type ScrubCoordinates struct{}

func (ScrubCoordinates) Name() string { return "scrub_coordinates" }

func (ScrubCoordinates) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range schema.CoordinateColumns() {
		if !frame.HasColumn(df, col) {
			continue
		}
		vals := frame.Floats(df, col)
		zeroed := 0
		for i, v := range vals {
			if v == 0 {
				vals[i] = math.NaN()
				zeroed++
			}
		}
		iss.Add(col+"_zeroed", zeroed)
		df = frame.WithFloats(df, col, vals)
	}
	return df, nil
}
