package config

import (
	"encoding/json"
	"testing"
)

/*
TestPipeline_DecodeRoundTrip verifies that a realistic pipeline file decodes
into the expected structure, including the free-form options bags.
*/
func TestPipeline_DecodeRoundTrip(t *testing.T) {
	t.Parallel()

	raw := `{
		"job": "zomato_deliveries",
		"source": { "kind": "file", "file": { "path": "data/raw/zomato.csv" } },
		"parser": {
			"kind": "csv",
			"options": { "has_header": true, "trim_space": true, "expected_fields": 20 }
		},
		"transform": [
			{ "kind": "tidy_strings" },
			{ "kind": "clean_times", "options": { "column": "Time_Orderd" } }
		],
		"output": {
			"dir": "data/processed",
			"clean": "clean.csv",
			"featured": "featured.csv"
		}
	}`

	var p Pipeline
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if p.Job != "zomato_deliveries" {
		t.Errorf("job = %q", p.Job)
	}
	if p.Source.Kind != "file" || p.Source.File.Path != "data/raw/zomato.csv" {
		t.Errorf("source = %+v", p.Source)
	}
	if !p.Parser.Options.Bool("has_header", false) {
		t.Error("has_header not decoded")
	}
	if n := p.Parser.Options.Int("expected_fields", 0); n != 20 {
		t.Errorf("expected_fields = %d, want 20", n)
	}
	if len(p.Transform) != 2 || p.Transform[1].Kind != "clean_times" {
		t.Errorf("transform = %+v", p.Transform)
	}
	if got := p.Transform[1].Options.String("column", ""); got != "Time_Orderd" {
		t.Errorf("column option = %q", got)
	}
	// A transform without an options object still gets a usable empty bag.
	if p.Transform[0].Options == nil {
		t.Error("missing options decoded to nil, want empty map")
	}
	if p.Output.Normalized != "" {
		t.Errorf("normalized = %q, want empty", p.Output.Normalized)
	}
}

/*
TestOptions_TypedAccess covers the typed getters: present keys, absent keys
with defaults, and the JSON float64-to-int coercion.
*/
func TestOptions_TypedAccess(t *testing.T) {
	t.Parallel()

	o := Options{
		"name":    "csv",
		"flag":    true,
		"n":       float64(20),
		"ratio":   0.5,
		"delim":   ";",
		"mapping": map[string]any{"a": "b", "skip": 1},
		"list":    []any{"x", "y", 3},
	}

	if got := o.String("name", ""); got != "csv" {
		t.Errorf("String = %q", got)
	}
	if got := o.String("absent", "dflt"); got != "dflt" {
		t.Errorf("String default = %q", got)
	}
	if !o.Bool("flag", false) {
		t.Error("Bool = false")
	}
	if got := o.Int("n", 0); got != 20 {
		t.Errorf("Int = %d", got)
	}
	if got := o.Float("ratio", 0); got != 0.5 {
		t.Errorf("Float = %v", got)
	}
	if got := o.Rune("delim", ','); got != ';' {
		t.Errorf("Rune = %q", got)
	}
	if got := o.Rune("absent", ','); got != ',' {
		t.Errorf("Rune default = %q", got)
	}

	m := o.StringMap("mapping")
	if m["a"] != "b" {
		t.Errorf("StringMap = %v", m)
	}
	if _, ok := m["skip"]; ok {
		t.Error("non-string map value not skipped")
	}

	l := o.StringSlice("list")
	if len(l) != 2 || l[0] != "x" || l[1] != "y" {
		t.Errorf("StringSlice = %v", l)
	}

	// Wrong types fall back to the default instead of panicking.
	if got := o.Int("name", 7); got != 7 {
		t.Errorf("Int on string = %d, want 7", got)
	}
}

func TestOptions_NullDecodesToEmptyMap(t *testing.T) {
	t.Parallel()

	var o Options
	if err := json.Unmarshal([]byte("null"), &o); err != nil {
		t.Fatalf("decode null: %v", err)
	}
	if o == nil {
		t.Fatal("null decoded to nil map")
	}
	if got := o.String("k", "d"); got != "d" {
		t.Errorf("lookup on empty = %q", got)
	}
}
