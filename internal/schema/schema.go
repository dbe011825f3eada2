// Package schema declares the fixed column contract for the delivery-order
// dataset: the 20 raw columns, the derived columns added by the cleaning
// pipeline, and the per-column validation rules (numeric ranges, categorical
// enums, spelling corrections).
//
// The dataset schema is static, so unlike a generic ETL contract the fields
// are plain constants rather than a JSON-decoded structure. Everything else
// in the pipeline keys off the groupings exposed here.
package schema

// Raw column names, exactly as they appear in the CSV header.
const (
	ColOrderID            = "ID"
	ColCourierID          = "Delivery_person_ID"
	ColAge                = "Delivery_person_Age"
	ColRating             = "Delivery_person_Ratings"
	ColRestaurantLat      = "Restaurant_latitude"
	ColRestaurantLon      = "Restaurant_longitude"
	ColDeliveryLat        = "Delivery_location_latitude"
	ColDeliveryLon        = "Delivery_location_longitude"
	ColOrderDate          = "Order_Date"
	ColTimeOrdered        = "Time_Orderd"
	ColTimePicked         = "Time_Order_picked"
	ColWeather            = "Weather_conditions"
	ColTraffic            = "Road_traffic_density"
	ColVehicleCondition   = "Vehicle_condition"
	ColOrderType          = "Type_of_order"
	ColVehicleType        = "Type_of_vehicle"
	ColMultipleDeliveries = "multiple_deliveries"
	ColFestival           = "Festival"
	ColCity               = "City"
	ColTimeTaken          = "Time_taken (min)"
)

// Derived columns added by the cleaning stages. Raw columns are never
// overwritten; repairs land in these.
const (
	ColTimeOrderedClean   = "Time_Orderd_clean"
	ColTimeOrderedMinutes = "Time_Orderd_minutes"
	ColTimePickedClean    = "Time_Order_picked_clean"
	ColTimePickedMinutes  = "Time_Order_picked_minutes"
	ColOrderDateClean     = "Order_Date_clean"
	ColOrderToPick        = "order_to_pick_minutes"
	ColPickupToDelivery   = "pickup_to_delivery_minutes"
)

// Feature columns present only in the featured output variant.
const (
	ColHaversineKm = "haversine_km"
	ColDayOfWeek   = "order_day_of_week"
	ColOrderHour   = "order_hour"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Validation rules discovered during profiling of the raw dataset.
var (
	// AgeRange bounds plausible courier ages.
	AgeRange = Range{Min: 18, Max: 60}

	// RatingRange bounds the courier rating scale.
	RatingRange = Range{Min: 1, Max: 5}

	// AllowedDeliveries is the valid domain of multiple_deliveries.
	AllowedDeliveries = map[float64]struct{}{0: {}, 1: {}, 2: {}, 3: {}}

	// CityRemap fixes known categorical misspellings.
	CityRemap = map[string]string{"Metropolitian": "Metropolitan"}

	// CityEnum is the canonical city-tier vocabulary. Values outside the
	// enum pass through unchanged; the enum exists for reporting.
	CityEnum = []string{"Urban", "Metropolitan", "Semi-Urban"}
)

// RawColumns returns the 20 raw columns in CSV order.
func RawColumns() []string {
	return []string{
		ColOrderID, ColCourierID, ColAge, ColRating,
		ColRestaurantLat, ColRestaurantLon, ColDeliveryLat, ColDeliveryLon,
		ColOrderDate, ColTimeOrdered, ColTimePicked,
		ColWeather, ColTraffic, ColVehicleCondition, ColOrderType,
		ColVehicleType, ColMultipleDeliveries, ColFestival, ColCity,
		ColTimeTaken,
	}
}

// CleanColumns returns the 27 columns of the clean output variant: the raw
// columns followed by the derived cleaning columns.
func CleanColumns() []string {
	return append(RawColumns(),
		ColTimeOrderedClean, ColTimeOrderedMinutes,
		ColTimePickedClean, ColTimePickedMinutes,
		ColOrderDateClean,
		ColOrderToPick, ColPickupToDelivery,
	)
}

// FeaturedColumns returns the 30 columns of the featured output variant.
func FeaturedColumns() []string {
	return append(CleanColumns(), ColHaversineKm, ColDayOfWeek, ColOrderHour)
}

// CoordinateColumns returns the four latitude/longitude columns. An exact
// zero in any of them is a sentinel for "unknown".
func CoordinateColumns() []string {
	return []string{ColRestaurantLat, ColRestaurantLon, ColDeliveryLat, ColDeliveryLon}
}

// CategoricalColumns returns the declared categorical columns. These are the
// columns eligible for mode imputation and cardinality reporting.
func CategoricalColumns() []string {
	return []string{ColWeather, ColTraffic, ColOrderType, ColVehicleType, ColFestival, ColCity}
}

// MinuteColumns returns the duration and minute-of-day columns. These are
// median-imputed and subject to the seconds-vs-minutes unit heuristic.
func MinuteColumns() []string {
	return []string{
		ColTimeTaken,
		ColTimeOrderedMinutes, ColTimePickedMinutes,
		ColOrderToPick, ColPickupToDelivery,
	}
}

// NumericColumns returns every numeric column of the clean variant, minute
// columns included. This is the column set for min-max scaling.
func NumericColumns() []string {
	return []string{
		ColAge, ColRating,
		ColRestaurantLat, ColRestaurantLon, ColDeliveryLat, ColDeliveryLon,
		ColVehicleCondition, ColMultipleDeliveries,
		ColTimeTaken,
		ColTimeOrderedMinutes, ColTimePickedMinutes,
		ColOrderToPick, ColPickupToDelivery,
	}
}

// MeanImputedColumns returns the numeric columns filled with the column mean
// (every numeric column that is not minute-denominated).
func MeanImputedColumns() []string {
	minute := make(map[string]struct{})
	for _, c := range MinuteColumns() {
		minute[c] = struct{}{}
	}
	var out []string
	for _, c := range NumericColumns() {
		if _, ok := minute[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// OutlierColumns returns the columns subject to IQR clipping.
func OutlierColumns() []string {
	return []string{ColAge, ColRating, ColTimeTaken, ColOrderToPick, ColPickupToDelivery}
}

// DedupKeyColumns returns the business key used for keyed de-duplication.
func DedupKeyColumns() []string {
	return []string{ColOrderID, ColCourierID, ColOrderDateClean}
}
