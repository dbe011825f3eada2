package builtin

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

func errMissingColumn(col string) error { return fmt.Errorf("column %q not found", col) }

// Intervals derives the two elapsed-minute columns from the repaired
// timestamps:
//
//	order_to_pick_minutes      = pickup - order, +1440 when the pickup
//	                             minute is numerically smaller (the dispatch
//	                             crossed midnight)
//	pickup_to_delivery_minutes = Time_taken (min) - order_to_pick_minutes
//
// Either value is missing when an endpoint is missing or when the corrected
// result is still negative (inconsistent source data).
type Intervals struct{}

func (Intervals) Name() string { return "intervals" }

func (Intervals) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range []string{schema.ColTimeOrderedMinutes, schema.ColTimePickedMinutes, schema.ColTimeTaken} {
		if !frame.HasColumn(df, col) {
			// Interval derivation needs the repaired time columns; running
			// this stage before CleanTimes is a chain-construction bug.
			return df, errMissingColumn(col)
		}
	}

	order := frame.Floats(df, schema.ColTimeOrderedMinutes)
	pickup := frame.Floats(df, schema.ColTimePickedMinutes)
	taken := frame.Floats(df, schema.ColTimeTaken)

	orderToPick := make([]float64, len(order))
	pickToDelivery := make([]float64, len(order))
	inconsistent := 0

	for i := range order {
		orderToPick[i] = math.NaN()
		pickToDelivery[i] = math.NaN()

		if math.IsNaN(order[i]) || math.IsNaN(pickup[i]) {
			continue
		}
		otp := pickup[i] - order[i]
		if otp < 0 {
			otp += minutesPerDay
		}
		if otp < 0 {
			continue
		}
		orderToPick[i] = otp

		if math.IsNaN(taken[i]) {
			continue
		}
		ptd := taken[i] - otp
		if ptd < 0 {
			inconsistent++
			continue
		}
		pickToDelivery[i] = ptd
	}
	iss.Add("pickup_to_delivery_negative", inconsistent)

	df = frame.WithFloats(df, schema.ColOrderToPick, orderToPick)
	df = frame.WithFloats(df, schema.ColPickupToDelivery, pickToDelivery)
	return df, nil
}
