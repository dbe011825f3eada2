// Package transformer defines the stage chain that carries a dataframe
// through the cleaning pipeline. Stages are immutable-per-stage: Apply
// consumes the previous table and returns a new one, which keeps every stage
// independently testable.
package transformer

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"

	"deliveryetl/internal/metrics"
	"deliveryetl/internal/report"
)

// Stage is one transformation over the full in-memory table. Implementations
// never reject rows for bad cell values; repairs happen by substituting
// missing values and incrementing issue counters.
type Stage interface {
	Name() string
	Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error)
}

// Chain is an ordered list of stages executed as a single pass.
type Chain struct {
	Job    string
	Stages []Stage
}

// Apply runs every stage in order, recording per-stage timing metrics. The
// first stage error aborts the chain; stage errors indicate programming or
// schema problems, not data quality issues.
func (c Chain) Apply(df dataframe.DataFrame, iss *report.Issues) (dataframe.DataFrame, error) {
	for _, s := range c.Stages {
		start := time.Now()
		next, err := s.Apply(df, iss)
		metrics.RecordStep(c.Job, s.Name(), err, time.Since(start))
		if err != nil {
			return df, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		df = next
	}
	return df, nil
}
