package builtin

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// The raw time-of-day columns mix three encodings: Excel-style day fractions
// ("0.458333333"), HH:MM, and HH:MM:SS. CleanTimes resolves them into a
// normalized HH:MM string column ("<col>_clean") and a minute-of-day float
// column ("<col>_minutes"). Anything else, including hour components >= 24,
// becomes missing in both derived columns. The raw column is left untouched
// for auditing.
type CleanTimes struct {
	// Column is the raw time column to repair.
	Column string
}

func (s CleanTimes) Name() string { return "clean_times:" + s.Column }

var (
	fractionRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	clockRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(:\d{2})?$`)
)

const minutesPerDay = 24 * 60

func (s CleanTimes) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	if !frame.HasColumn(df, s.Column) {
		return df, fmt.Errorf("column %q not found", s.Column)
	}

	recs := frame.Strings(df, s.Column)
	clean := make([]string, len(recs))
	minutes := make([]float64, len(recs))
	missing := 0

	for i, raw := range recs {
		m, ok := parseTimeOfDay(raw)
		if !ok {
			clean[i] = ""
			minutes[i] = math.NaN()
			missing++
			continue
		}
		clean[i] = formatMinutes(m)
		minutes[i] = float64(m)
	}
	iss.Add(s.Column+"_clean_missing", missing)

	df = frame.WithStrings(df, s.Column+"_clean", clean)
	df = frame.WithFloats(df, s.Column+"_minutes", minutes)
	return df, nil
}

// parseTimeOfDay interprets one raw cell as a minute-of-day value.
func parseTimeOfDay(raw string) (int, bool) {
	v := strings.TrimSpace(raw)
	if frame.IsMissing(v) {
		return 0, false
	}

	// Excel-style day fraction, e.g. 0.458333333 -> 11:00.
	if fractionRe.MatchString(v) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		m := int(math.Round(f * minutesPerDay))
		// Rounding 0.99999... must not spill into the next day.
		if m < 0 {
			m = 0
		}
		if m > minutesPerDay-1 {
			m = minutesPerDay - 1
		}
		return m, true
	}

	// HH:MM or HH:MM:SS; seconds are truncated, hours >= 24 are invalid.
	if g := clockRe.FindStringSubmatch(v); g != nil {
		h, _ := strconv.Atoi(g[1])
		m, _ := strconv.Atoi(g[2])
		if h >= 24 || m >= 60 {
			return 0, false
		}
		return h*60 + m, true
	}

	return 0, false
}

// formatMinutes renders a minute-of-day as HH:MM.
func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// CleanDates parses the free-text Order_Date column with the day-first
// convention into an ISO-formatted "Order_Date_clean" column. Unparseable
// values become missing.
type CleanDates struct{}

func (CleanDates) Name() string { return "clean_dates" }

// Day-first layouts observed in the raw exports, plus ISO so that re-running
// the pipeline over its own output is a no-op.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

func (CleanDates) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	if !frame.HasColumn(df, schema.ColOrderDate) {
		return df, fmt.Errorf("column %q not found", schema.ColOrderDate)
	}

	recs := frame.Strings(df, schema.ColOrderDate)
	clean := make([]string, len(recs))
	missing := 0
	for i, raw := range recs {
		t, ok := parseDayFirst(raw)
		if !ok {
			clean[i] = ""
			missing++
			continue
		}
		clean[i] = t.Format("2006-01-02")
	}
	iss.Add("Order_Date_parse_missing", missing)

	return frame.WithStrings(df, schema.ColOrderDateClean, clean), nil
}

func parseDayFirst(raw string) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	if frame.IsMissing(v) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
