package report

// Issues accumulates per-column repair counters while the stage chain runs.
// Keys are short issue names such as "Delivery_person_Age_missing_filled" or
// "duplicates_removed_exact"; insertion order is preserved so the rendered
// report follows the pipeline order.
type Issues struct {
	counts map[string]int
	order  []string
}

// NewIssues returns an empty counter set.
func NewIssues() *Issues {
	return &Issues{counts: make(map[string]int)}
}

// Add increments the counter for key by n. Non-positive increments are
// ignored so stages can report raw counts unconditionally.
func (i *Issues) Add(key string, n int) {
	if n <= 0 {
		return
	}
	if _, ok := i.counts[key]; !ok {
		i.order = append(i.order, key)
	}
	i.counts[key] += n
}

// Count returns the current value for key (zero when never incremented).
func (i *Issues) Count(key string) int { return i.counts[key] }

// Keys returns all keys with non-zero counts in insertion order.
func (i *Issues) Keys() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Total returns the sum of all counters.
func (i *Issues) Total() int {
	t := 0
	for _, v := range i.counts {
		t += v
	}
	return t
}
