// Package report produces the data-quality summary for a cleaning run: the
// issue counters collected by the stages plus per-column descriptive
// statistics of the cleaned table. The report renders to markdown and,
// optionally, to an XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"deliveryetl/internal/frame"
	"deliveryetl/internal/schema"
)

// ColumnStat summarizes one numeric column of the clean table.
type ColumnStat struct {
	Name    string
	Count   int // non-missing values
	Missing int
	Min     float64
	Mean    float64
	Median  float64
	Max     float64
}

// CategoryStat summarizes one categorical column.
type CategoryStat struct {
	Name        string
	Count       int // non-missing values
	Missing     int
	Cardinality int
	Top         string
	TopCount    int
}

// Report is the full quality summary for one run.
type Report struct {
	Job         string
	GeneratedAt time.Time
	InputRows   int
	OutputRows  int
	Issues      *Issues
	Numeric     []ColumnStat
	Categorical []CategoryStat
}

// Build computes the summary statistics over the clean dataframe and bundles
// them with the collected issue counters.
func Build(job string, inputRows int, clean dataframe.DataFrame, iss *Issues) *Report {
	r := &Report{
		Job:         job,
		GeneratedAt: time.Now(),
		InputRows:   inputRows,
		OutputRows:  clean.Nrow(),
		Issues:      iss,
	}

	for _, col := range schema.NumericColumns() {
		if !frame.HasColumn(clean, col) {
			continue
		}
		vals := frame.Floats(clean, col)
		valid := frame.NonMissing(vals)
		cs := ColumnStat{Name: col, Count: len(valid), Missing: len(vals) - len(valid)}
		if len(valid) > 0 {
			sorted := append([]float64(nil), valid...)
			sort.Float64s(sorted)
			cs.Min = sorted[0]
			cs.Max = sorted[len(sorted)-1]
			cs.Mean = stat.Mean(valid, nil)
			cs.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
		}
		r.Numeric = append(r.Numeric, cs)
	}

	for _, col := range schema.CategoricalColumns() {
		if !frame.HasColumn(clean, col) {
			continue
		}
		recs := frame.Strings(clean, col)
		counts := map[string]int{}
		missing := 0
		for _, v := range recs {
			if frame.IsMissing(v) {
				missing++
				continue
			}
			counts[v]++
		}
		cs := CategoryStat{Name: col, Count: len(recs) - missing, Missing: missing, Cardinality: len(counts)}
		for v, n := range counts {
			if n > cs.TopCount || (n == cs.TopCount && v < cs.Top) {
				cs.Top, cs.TopCount = v, n
			}
		}
		r.Categorical = append(r.Categorical, cs)
	}

	return r
}

// Render produces the markdown form of the report.
func (r *Report) Render() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Cleaning report: %s\n\n", r.Job)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Rows in: %d, rows out: %d (duplicates removed: %d)\n\n",
		r.InputRows, r.OutputRows, r.InputRows-r.OutputRows)

	b.WriteString("## Issues\n\n")
	keys := r.Issues.Keys()
	if len(keys) == 0 {
		b.WriteString("No issues recorded.\n")
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %d\n", k, r.Issues.Count(k))
	}

	b.WriteString("\n## Numeric columns\n\n")
	b.WriteString("| column | count | missing | min | mean | median | max |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, c := range r.Numeric {
		fmt.Fprintf(&b, "| %s | %d | %d | %.4f | %.4f | %.4f | %.4f |\n",
			c.Name, c.Count, c.Missing, c.Min, c.Mean, c.Median, c.Max)
	}

	b.WriteString("\n## Categorical columns\n\n")
	b.WriteString("| column | count | missing | cardinality | top | top count |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, c := range r.Categorical {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %s | %d |\n",
			c.Name, c.Count, c.Missing, c.Cardinality, c.Top, c.TopCount)
	}

	return b.Bytes()
}
