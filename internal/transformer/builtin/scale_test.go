package builtin

import (
	"math"
	"testing"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

/*
TestMinMaxScale_Apply verifies the [0,1] rescaling: the observed minimum maps
to 0, the maximum to 1, interior values proportionally, and missing values
stay missing.
*/
func TestMinMaxScale_Apply(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColAge, []string{"20", "30", "40", "nan"}})

	out, err := MinMaxScale{}.Apply(df, report.NewIssues())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := frame.Floats(out, schema.ColAge)
	if got[0] != 0 || !almostEqual(got[1], 0.5) || got[2] != 1 {
		t.Errorf("scaled = %v, want [0, 0.5, 1, NaN]", got)
	}
	if !math.IsNaN(got[3]) {
		t.Errorf("missing value became %v", got[3])
	}
}

/*
TestMinMaxScale_ZeroVariance pins the degenerate policy: a constant column
has no span to scale over, so every non-missing value becomes 0.0 rather
than NaN from a division by zero.
*/
func TestMinMaxScale_ZeroVariance(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColRating, []string{"4.5", "4.5", "nan"}})

	iss := report.NewIssues()
	out, err := MinMaxScale{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := frame.Floats(out, schema.ColRating)
	if got[0] != 0 || got[1] != 0 || !math.IsNaN(got[2]) {
		t.Errorf("scaled = %v, want [0, 0, NaN]", got)
	}
	if n := iss.Count(schema.ColRating + "_zero_variance"); n != 1 {
		t.Errorf("zero-variance counter = %d, want 1", n)
	}
}
