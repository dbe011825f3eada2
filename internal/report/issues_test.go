package report

import "testing"

/*
TestIssues_AddAndOrder verifies the counter semantics: non-positive
increments are ignored, repeat keys accumulate, and Keys preserves first-
insertion order for the rendered report.
*/
func TestIssues_AddAndOrder(t *testing.T) {
	t.Parallel()

	iss := NewIssues()
	iss.Add("b_first", 2)
	iss.Add("a_second", 1)
	iss.Add("b_first", 3)
	iss.Add("ignored_zero", 0)
	iss.Add("ignored_negative", -4)

	if n := iss.Count("b_first"); n != 5 {
		t.Errorf("Count(b_first) = %d, want 5", n)
	}
	if n := iss.Count("never_added"); n != 0 {
		t.Errorf("Count(never_added) = %d, want 0", n)
	}

	keys := iss.Keys()
	if len(keys) != 2 || keys[0] != "b_first" || keys[1] != "a_second" {
		t.Errorf("Keys = %v, want insertion order without ignored keys", keys)
	}

	if got := iss.Total(); got != 6 {
		t.Errorf("Total = %d, want 6", got)
	}
}
