package builtin

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// Features derives the modeling columns of the featured variant from the
// cleaned table:
//
//   - haversine_km: great-circle distance between the restaurant and the
//     delivery location, missing when any of the four coordinates is missing
//   - order_day_of_week: weekday name of the cleaned order date
//   - order_hour: hour-of-day extracted from the order minute value
type Features struct{}

func (Features) Name() string { return "features" }

func (Features) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, col := range append(schema.CoordinateColumns(),
		schema.ColOrderDateClean, schema.ColTimeOrderedMinutes) {
		if !frame.HasColumn(df, col) {
			return df, errMissingColumn(col)
		}
	}

	rLat := frame.Floats(df, schema.ColRestaurantLat)
	rLon := frame.Floats(df, schema.ColRestaurantLon)
	dLat := frame.Floats(df, schema.ColDeliveryLat)
	dLon := frame.Floats(df, schema.ColDeliveryLon)

	dist := make([]float64, len(rLat))
	missingDist := 0
	for i := range rLat {
		if math.IsNaN(rLat[i]) || math.IsNaN(rLon[i]) || math.IsNaN(dLat[i]) || math.IsNaN(dLon[i]) {
			dist[i] = math.NaN()
			missingDist++
			continue
		}
		dist[i] = haversineKm(rLat[i], rLon[i], dLat[i], dLon[i])
	}
	iss.Add("haversine_km_missing", missingDist)
	df = frame.WithFloats(df, schema.ColHaversineKm, dist)

	dates := frame.Strings(df, schema.ColOrderDateClean)
	dow := make([]string, len(dates))
	for i, v := range dates {
		if frame.IsMissing(v) {
			dow[i] = ""
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			dow[i] = ""
			continue
		}
		dow[i] = t.Weekday().String()
	}
	df = frame.WithStrings(df, schema.ColDayOfWeek, dow)

	minutes := frame.Floats(df, schema.ColTimeOrderedMinutes)
	hours := make([]float64, len(minutes))
	for i, m := range minutes {
		if math.IsNaN(m) {
			hours[i] = math.NaN()
			continue
		}
		hours[i] = math.Floor(m / 60)
	}
	df = frame.WithFloats(df, schema.ColOrderHour, hours)

	return df, nil
}

const earthRadiusKm = 6371.0

// haversineKm computes the great-circle distance between two lat/lon pairs
// in kilometres.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
