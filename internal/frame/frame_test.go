package frame

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

/*
TestIsMissing_Table covers the full set of missing literals that show up in
the raw exports, plus values that must not be treated as missing.
*/
func TestIsMissing_Table(t *testing.T) {
	t.Parallel()

	missing := []string{"", " ", "nan", "NaN", "NAN", "NA", "None", "null", "  nan  "}
	for _, v := range missing {
		if !IsMissing(v) {
			t.Errorf("IsMissing(%q) = false, want true", v)
		}
	}
	present := []string{"0", "n/a ish", "Nil", "none of the above", "22.7"}
	for _, v := range present {
		if IsMissing(v) {
			t.Errorf("IsMissing(%q) = true, want false", v)
		}
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	if v := ParseFloat(" 22.5 "); v != 22.5 {
		t.Errorf("ParseFloat = %v, want 22.5", v)
	}
	for _, raw := range []string{"nan", "", "abc"} {
		if v := ParseFloat(raw); !math.IsNaN(v) {
			t.Errorf("ParseFloat(%q) = %v, want NaN", raw, v)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), ""},
		{660, "660"},
		{4.5, "4.5"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := FormatFloat(tc.in); got != tc.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

/*
TestRender verifies the CSV-ready records: header first, float columns
re-rendered so NaN exports as an empty cell and integral values carry no
decimal tail.
*/
func TestRender(t *testing.T) {
	t.Parallel()

	df := dataframe.New(
		series.New([]string{"a", "b"}, series.String, "id"),
		series.New([]float64{660, math.NaN()}, series.Float, "minutes"),
	)
	if df.Err != nil {
		t.Fatalf("build frame: %v", df.Err)
	}

	recs := Render(df)
	if len(recs) != 3 {
		t.Fatalf("records = %d rows, want 3", len(recs))
	}
	if recs[0][0] != "id" || recs[0][1] != "minutes" {
		t.Errorf("header = %v", recs[0])
	}
	if recs[1][1] != "660" {
		t.Errorf("float cell = %q, want \"660\"", recs[1][1])
	}
	if recs[2][1] != "" {
		t.Errorf("missing cell = %q, want empty", recs[2][1])
	}
}

func TestWithFloatsRoundTrip(t *testing.T) {
	t.Parallel()

	df := dataframe.New(series.New([]string{"10", "nan"}, series.String, "v"))
	df = WithFloats(df, "v", Floats(df, "v"))

	got := Floats(df, "v")
	if got[0] != 10 || !math.IsNaN(got[1]) {
		t.Errorf("round trip = %v, want [10, NaN]", got)
	}
}

/*
TestFloats_FloatSeriesKeepsFullPrecision pins that reading a Float series
back never loses precision: a stored mean like 4.233333333333333 must come
back bit-identical, not truncated to the 6 decimals of the series' string
records. Stages that re-read Float columns (range checks, clipping,
imputation, scaling) depend on this for stable re-runs.
*/
func TestFloats_FloatSeriesKeepsFullPrecision(t *testing.T) {
	t.Parallel()

	want := 12.7 / 3 // 4.233333333333333...
	df := dataframe.New(
		series.New([]float64{want, math.NaN()}, series.Float, "rating"),
	)
	if df.Err != nil {
		t.Fatalf("build frame: %v", df.Err)
	}

	got := Floats(df, "rating")
	if got[0] != want {
		t.Errorf("value = %.17g, want %.17g bit-identical", got[0], want)
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("missing value = %v, want NaN", got[1])
	}
}
