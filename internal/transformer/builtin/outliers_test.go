package builtin

import (
	"math"
	"testing"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

/*
TestClipOutliers_Apply verifies the IQR rule without re-deriving the exact
quantile interpolation: the extreme value must be pulled down to the upper
fence, the fence must sit strictly between the bulk and the outlier, and the
bulk must be untouched.
*/
func TestClipOutliers_Apply(t *testing.T) {
	t.Parallel()

	bulk := []string{"20", "21", "22", "23"}
	df := newFrame(t, col{schema.ColAge, append(bulk, "100")})

	iss := report.NewIssues()
	out, err := ClipOutliers{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := frame.Floats(out, schema.ColAge)
	for i := 0; i < len(bulk); i++ {
		if got[i] != float64(20+i) {
			t.Errorf("bulk value[%d] = %v, want %d", i, got[i], 20+i)
		}
	}
	if got[4] >= 100 || got[4] <= 23 {
		t.Errorf("outlier clipped to %v, want a fence in (23, 100)", got[4])
	}
	if n := iss.Count("outliers_capped"); n != 1 {
		t.Errorf("capped counter = %d, want 1", n)
	}
}

/*
TestClipOutliers_ZeroIQRLeavesColumnAlone pins the degenerate distribution:
when the quartiles collapse the fences would null the whole column, so the
stage must skip it entirely.
*/
func TestClipOutliers_ZeroIQRLeavesColumnAlone(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColAge, []string{"30", "30", "30", "30", "500"}})

	iss := report.NewIssues()
	out, err := ClipOutliers{}.Apply(df, iss)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := frame.Floats(out, schema.ColAge)
	if got[4] != 500 {
		t.Errorf("value = %v, want 500 (untouched)", got[4])
	}
	if n := iss.Count("outliers_capped"); n != 0 {
		t.Errorf("capped counter = %d, want 0", n)
	}
}

func TestClipOutliers_MissingValuesStayMissing(t *testing.T) {
	t.Parallel()

	df := newFrame(t, col{schema.ColAge, []string{"20", "21", "22", "23", "nan"}})

	out, err := ClipOutliers{}.Apply(df, report.NewIssues())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := frame.Floats(out, schema.ColAge)
	if !math.IsNaN(got[4]) {
		t.Errorf("missing value became %v", got[4])
	}
}
