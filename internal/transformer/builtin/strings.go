// Package builtin contains the reusable cleaning stages of the pipeline.
// Each stage is a pure function over the full table: same row count in and
// out (except DeDup), bad cells repaired to missing, never rejected.
package builtin

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
)

// TidyStrings trims whitespace in every string cell, converts the missing
// literals ("nan", "None", ...) to empty cells, and canonicalizes categorical
// spellings against the schema correction map. Unrecognized categorical
// values pass through unchanged.
type TidyStrings struct{}

func (TidyStrings) Name() string { return "tidy_strings" }

func (TidyStrings) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	names := df.Names()
	types := df.Types()
	for i, col := range names {
		if types[i] != series.String {
			continue
		}
		recs := df.Col(col).Records()
		respelled := 0
		out := make([]string, len(recs))
		for j, v := range recs {
			v = strings.TrimSpace(v)
			if frame.IsMissing(v) {
				out[j] = ""
				continue
			}
			if col == schema.ColCity {
				if fixed, ok := schema.CityRemap[v]; ok {
					v = fixed
					respelled++
				}
			}
			out[j] = v
		}
		df = frame.WithStrings(df, col, out)
		if col == schema.ColCity {
			iss.Add("City_respelled", respelled)
		}
	}
	return df, nil
}
