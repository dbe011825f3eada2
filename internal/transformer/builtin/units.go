package builtin

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// StandardizeUnits makes sure duration columns are expressed in minutes and
// distance columns in kilometres.
//
// Durations: a column where more than 80% of the values above three hours
// are neatly divisible by 60 was almost certainly exported in seconds; such a
// column is divided by 60 wholesale. The minute-of-day columns are exempt
// from the heuristic (they come out of the timestamp repair in minutes by
// construction). All minute columns are then capped at 24 hours to avoid
// downstream skew.
//
// Distances: a column whose maximum exceeds 1000 is taken to be in metres and
// divided by 1000.
type StandardizeUnits struct{}

func (StandardizeUnits) Name() string { return "standardize_units" }

// Distance columns that may appear in re-processed outputs; none exist in
// the raw dataset, so this part is usually a no-op.
var distanceColumns = []string{schema.ColHaversineKm, "Distance_km", "Delivery_distance"}

// Minute-of-day columns carry clock positions, not durations; a column of
// full-hour order times must not be mistaken for seconds.
var clockColumns = map[string]struct{}{
	schema.ColTimeOrderedMinutes: {},
	schema.ColTimePickedMinutes:  {},
}

const (
	secondsSuspectThreshold = 180  // minutes; 3 hours
	secondsSuspectShare     = 0.8  // share of rows that must look like seconds
	metreSuspectMax         = 1000 // km columns never reach this
)

func (StandardizeUnits) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range schema.MinuteColumns() {
		if !frame.HasColumn(df, col) {
			continue
		}
		vals := frame.Floats(df, col)
		if len(frame.NonMissing(vals)) == 0 {
			continue
		}

		_, isClock := clockColumns[col]

		suspect := 0
		if !isClock {
			for _, v := range vals {
				if !math.IsNaN(v) && v > secondsSuspectThreshold && math.Mod(v, 60) == 0 {
					suspect++
				}
			}
		}
		if suspect > 0 && float64(suspect)/float64(len(vals)) > secondsSuspectShare {
			for i, v := range vals {
				if !math.IsNaN(v) {
					vals[i] = v / 60
				}
			}
			iss.Add("time_unit_conversions", suspect)
		}

		for i, v := range vals {
			if !math.IsNaN(v) && v > minutesPerDay {
				vals[i] = minutesPerDay
			}
		}
		df = frame.WithFloats(df, col, vals)
	}

	for _, col := range distanceColumns {
		if !frame.HasColumn(df, col) {
			continue
		}
		vals := frame.Floats(df, col)
		valid := frame.NonMissing(vals)
		if len(valid) == 0 {
			continue
		}
		max := valid[0]
		for _, v := range valid {
			if v > max {
				max = v
			}
		}
		if max > metreSuspectMax {
			for i, v := range vals {
				if !math.IsNaN(v) {
					vals[i] = v / 1000
				}
			}
			iss.Add("distance_standardised", len(valid))
			df = frame.WithFloats(df, col, vals)
		}
	}

	return df, nil
}
