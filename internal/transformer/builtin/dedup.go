package builtin

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/zeebo/xxh3"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// DeDup removes duplicate delivery records in two passes:
//
//  1. Exact duplicates: rows identical across all columns are collapsed to
//     their first occurrence. Rows are keyed by an xxh3 hash of the joined
//     cells; hash collisions are disambiguated by comparing the actual rows.
//  2. Keyed duplicates: among rows sharing the same
//     (ID, Delivery_person_ID, Order_Date_clean) business key, only the row
//     with the earliest Time_Orderd_minutes survives. Ties break towards the
//     earlier input position. Rows with an incomplete key pass through.
//
// This is the only stage that changes the row count.
type DeDup struct{}

func (DeDup) Name() string { return "dedup" }

// cell separator unlikely to occur in data
const keySep = "\x1f"

func (DeDup) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	records := df.Records()
	if len(records) < 2 {
		return df, nil
	}
	rows := records[1:] // drop the header row

	keep := exactPass(rows, iss)
	keep = keyedPass(df, rows, keep, iss)

	if len(keep) == len(rows) {
		return df, nil
	}
	out := df.Subset(keep)
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

// exactPass returns the indexes of rows that are not exact duplicates of an
// earlier row, in input order.
func exactPass(rows [][]string, iss *report.Issues) []int {
	seen := make(map[uint64][]int, len(rows))
	keep := make([]int, 0, len(rows))
	removed := 0

nextRow:
	for i, row := range rows {
		h := xxh3.HashString(strings.Join(row, keySep))
		for _, j := range seen[h] {
			if equalRows(rows[j], row) {
				removed++
				continue nextRow
			}
		}
		seen[h] = append(seen[h], i)
		keep = append(keep, i)
	}
	iss.Add("duplicates_removed_exact", removed)
	return keep
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// keyedPass keeps, per business key, the row with the smallest order-time
// minute value. Candidate indexes must already be deduplicated exactly.
func keyedPass(df dataframe.DataFrame, rows [][]string, candidates []int, iss *report.Issues) []int {
	keyCols := schema.DedupKeyColumns()
	colIdx := make([]int, 0, len(keyCols))
	for _, kc := range keyCols {
		idx := columnIndex(df, kc)
		if idx < 0 {
			// Without the full key (e.g. dates were never cleaned) the keyed
			// pass cannot run; exact dedup already happened.
			return candidates
		}
		colIdx = append(colIdx, idx)
	}
	minutes := frame.Floats(df, schema.ColTimeOrderedMinutes)

	type slot struct {
		index   int
		minutes float64
	}
	winners := make(map[string]slot, len(candidates))
	var passthrough []int
	removed := 0

	for _, i := range candidates {
		var b strings.Builder
		complete := true
		for _, ci := range colIdx {
			v := rows[i][ci]
			if frame.IsMissing(v) {
				complete = false
				break
			}
			b.WriteString(v)
			b.WriteString(keySep)
		}
		if !complete {
			passthrough = append(passthrough, i)
			continue
		}
		key := b.String()

		m := math.Inf(1)
		if i < len(minutes) && !math.IsNaN(minutes[i]) {
			m = minutes[i]
		}
		prev, exists := winners[key]
		if !exists {
			winners[key] = slot{index: i, minutes: m}
			continue
		}
		removed++
		if m < prev.minutes {
			winners[key] = slot{index: i, minutes: m}
		}
	}
	iss.Add("duplicates_removed_key", removed)

	keep := make([]int, 0, len(winners)+len(passthrough))
	for _, s := range winners {
		keep = append(keep, s.index)
	}
	keep = append(keep, passthrough...)
	sort.Ints(keep)
	return keep
}

func columnIndex(df dataframe.DataFrame, name string) int {
	for i, n := range df.Names() {
		if n == name {
			return i
		}
	}
	return -1
}
