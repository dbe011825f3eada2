package builtin

import (
	"math"
	"testing"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

/*
TestEnforceRanges_Apply verifies that out-of-range values are nulled, never
clamped: ages outside [18,60], ratings outside [1,5], and delivery counts
outside {0,1,2,3} all become missing, while in-range values survive exactly.
*/
func TestEnforceRanges_Apply(t *testing.T) {
	t.Parallel()

	df := newFrame(t,
		col{schema.ColAge, []string{"15", "25", "61", "nan"}},
		col{schema.ColRating, []string{"0.5", "4.5", "5", "six"}},
		col{schema.ColMultipleDeliveries, []string{"0", "5", "2", "3"}},
	)

	iss := report.NewIssues()
	out, err := EnforceRanges{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	age := frame.Floats(out, schema.ColAge)
	if !math.IsNaN(age[0]) || age[1] != 25 || !math.IsNaN(age[2]) || !math.IsNaN(age[3]) {
		t.Errorf("age = %v", age)
	}
	if n := iss.Count(schema.ColAge + "_out_of_range"); n != 2 {
		t.Errorf("age out-of-range = %d, want 2", n)
	}

	rating := frame.Floats(out, schema.ColRating)
	if !math.IsNaN(rating[0]) || rating[1] != 4.5 || rating[2] != 5 || !math.IsNaN(rating[3]) {
		t.Errorf("rating = %v", rating)
	}
	// "six" was already unparseable, so only "0.5" counts as out of range.
	if n := iss.Count(schema.ColRating + "_out_of_range"); n != 1 {
		t.Errorf("rating out-of-range = %d, want 1", n)
	}

	multi := frame.Floats(out, schema.ColMultipleDeliveries)
	if multi[0] != 0 || !math.IsNaN(multi[1]) || multi[2] != 2 || multi[3] != 3 {
		t.Errorf("multiple_deliveries = %v", multi)
	}
	if n := iss.Count(schema.ColMultipleDeliveries + "_out_of_range"); n != 1 {
		t.Errorf("multiple_deliveries out-of-range = %d, want 1", n)
	}
}

/*
TestScrubCoordinates_Apply verifies that exact-zero coordinates become
missing and every other value, including negative longitudes, is preserved.
*/
func TestScrubCoordinates_Apply(t *testing.T) {
	t.Parallel()

	df := newFrame(t,
		col{schema.ColRestaurantLat, []string{"0", "22.745049"}},
		col{schema.ColRestaurantLon, []string{"0", "75.892471"}},
		col{schema.ColDeliveryLat, []string{"22.76", "-0.2"}},
		col{schema.ColDeliveryLon, []string{"75.91", "75.95"}},
	)

	iss := report.NewIssues()
	out, err := ScrubCoordinates{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	lat := frame.Floats(out, schema.ColRestaurantLat)
	if !math.IsNaN(lat[0]) || lat[1] != 22.745049 {
		t.Errorf("restaurant latitude = %v", lat)
	}
	dLat := frame.Floats(out, schema.ColDeliveryLat)
	if dLat[0] != 22.76 || dLat[1] != -0.2 {
		t.Errorf("delivery latitude = %v", dLat)
	}

	if n := iss.Count(schema.ColRestaurantLat + "_zeroed"); n != 1 {
		t.Errorf("zeroed counter = %d, want 1", n)
	}
	if n := iss.Count(schema.ColDeliveryLat + "_zeroed"); n != 0 {
		t.Errorf("delivery latitude zeroed = %d, want 0", n)
	}
}
