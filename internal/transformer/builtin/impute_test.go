package builtin

import (
	"math"
	"testing"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

/*
TestImpute_MedianForMinutes verifies that duration columns are filled with
the column median computed over the valid values only.
*/
func TestImpute_MedianForMinutes(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColTimeTaken, []string{"10", "20", "30", "nan"}})

	iss := report.NewIssues()
	out, err := Impute{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := frame.Floats(out, schema.ColTimeTaken)
	if got[3] != 20 {
		t.Errorf("filled value = %v, want the median 20", got[3])
	}
	if n := iss.Count(schema.ColTimeTaken + "_missing_filled"); n != 1 {
		t.Errorf("filled counter = %d, want 1", n)
	}
}

/*
TestImpute_MeanForOtherNumerics verifies the mean strategy on a numeric
column that is not minute-denominated.
*/
func TestImpute_MeanForOtherNumerics(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColAge, []string{"20", "30", ""}})

	iss := report.NewIssues()
	out, err := Impute{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := frame.Floats(out, schema.ColAge)
	if got[2] != 25 {
		t.Errorf("filled value = %v, want the mean 25", got[2])
	}
}

/*
TestImpute_ModeForCategoricals verifies the mode strategy, including the
deterministic tie-break towards the lexicographically smaller value.
*/
func TestImpute_ModeForCategoricals(t *testing.T) {
	t.Parallel()

	df := newFrame(t,
		col{schema.ColWeather, []string{"Sunny", "Sunny", "Fog", "nan"}},
		col{schema.ColTraffic, []string{"High", "Low", "", ""}},
	)

	iss := report.NewIssues()
	out, err := Impute{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := frame.Strings(out, schema.ColWeather); got[3] != "Sunny" {
		t.Errorf("weather filled = %q, want Sunny", got[3])
	}
	// High and Low are tied; the smaller value wins.
	traffic := frame.Strings(out, schema.ColTraffic)
	if traffic[2] != "High" || traffic[3] != "High" {
		t.Errorf("traffic filled = %v, want High for both", traffic[2:])
	}
	if n := iss.Count(schema.ColTraffic + "_missing_filled"); n != 2 {
		t.Errorf("traffic filled counter = %d, want 2", n)
	}
}

/*
TestImpute_RegeneratesCleanStrings verifies that the HH:MM string twin of a
minute column is rebuilt wherever the minutes were present or imputed, so the
pair never disagrees in the output.
*/
func TestImpute_RegeneratesCleanStrings(t *testing.T) {
	t.Parallel()

	df := newFrame(t,
		col{schema.ColTimeOrderedClean, []string{"11:00", "", ""}},
		col{schema.ColTimeOrderedMinutes, []string{"660", "700", "nan"}},
	)

	iss := report.NewIssues()
	out, err := Impute{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Median of {660, 700} is 680, so the missing row becomes 680 = 11:20.
	minutes := frame.Floats(out, schema.ColTimeOrderedMinutes)
	if minutes[2] != 680 {
		t.Fatalf("imputed minutes = %v, want 680", minutes[2])
	}

	clean := frame.Strings(out, schema.ColTimeOrderedClean)
	want := []string{"11:00", "11:40", "11:20"}
	for i := range want {
		if clean[i] != want[i] {
			t.Errorf("clean[%d] = %q, want %q", i, clean[i], want[i])
		}
	}
}

/*
TestImpute_AllMissingColumnLeftAlone pins the degenerate case: a column with
no valid values has no statistic to impute from and must stay fully missing.
*/
func TestImpute_AllMissingColumnLeftAlone(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColAge, []string{"nan", "", "None"}})

	out, err := Impute{}.Apply(df, report.NewIssues())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, v := range frame.Floats(out, schema.ColAge) {
		if !math.IsNaN(v) {
			t.Errorf("value[%d] = %v, want NaN", i, v)
		}
	}
}
