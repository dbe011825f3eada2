// Package config defines the canonical, JSON-serializable configuration model
// for the cleaning pipeline. It is intentionally small, explicit, and
// dependency-free so that pipelines can be loaded from disk and passed through
// the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in pipeline
//     files under configs/pipelines/*.json.
//  3. Minimalism: No third-party config libraries; decoding is performed by
//     the standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":    "zomato_deliveries",
//	  "source": { "kind": "file", "file": { "path": "data/raw/zomato_dataset.csv" } },
//	  "parser": { "kind": "csv", "options": { "has_header": true, "trim_space": true } },
//	  "output": { "dir": "data/processed", "clean": "zomato_deliveries_clean.csv" }
//	}
package config

import "encoding/json"

// Pipeline describes one full cleaning run in JSON. It is the top-level
// object decoded from a pipeline file.
type Pipeline struct {
	// Job is the logical job name, used for metrics labels and report titles.
	Job string `json:"job"`

	// Source describes where the raw CSV comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes become the in-memory table.
	Parser Parser `json:"parser"`

	// Transform optionally overrides the ordered stage chain. Each entry has
	// a kind and an options bag interpreted by the stage implementation.
	// When empty, the canonical cleaning chain is used.
	Transform []Transform `json:"transform"`

	// Output describes the flat-file sinks for the cleaned variants and the
	// quality report.
	Output Output `json:"output"`
}

// Source identifies the data source. The only current kind is "file"; the
// pipeline reads one local CSV and nothing else.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the raw CSV.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into rows and columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys are:
	//   has_header (bool), comma (string), trim_space (bool),
	//   expected_fields (int), header_map (object)
	Options Options `json:"options"`
}

// Transform defines a single stage override. The sequence of entries forms
// the stage chain executed by the pipeline.
type Transform struct {
	// Kind selects the stage implementation (e.g. "tidy_strings",
	// "clean_times", "enforce_ranges", "impute", "dedup").
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected stage.
	Options Options `json:"options"`
}

// Output configures the flat-file sinks. Relative file names are resolved
// against Dir. Empty names disable the corresponding artifact, except Clean
// which is always written.
type Output struct {
	// Dir is the directory that receives all output files. Created when
	// missing.
	Dir string `json:"dir"`

	// Clean names the 27-column cleaned CSV.
	Clean string `json:"clean"`

	// Featured names the 30-column CSV with derived features.
	Featured string `json:"featured"`

	// Normalized names the 27-column min-max scaled CSV.
	Normalized string `json:"normalized"`

	// Report names the markdown quality report.
	Report string `json:"report"`

	// ReportXLSX names the spreadsheet rendering of the quality report.
	ReportXLSX string `json:"report_xlsx"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It purposefully
// performs only minimal type coercion and returns provided defaults when a
// key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers are decoded as
// float64 by encoding/json, so this method accepts float64 and casts to int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Float returns the float64 value for key or def.
func (o Options) Float(key string, def float64) float64 {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. This is useful for single-character parser settings such
// as a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings (or an array of interface values containing strings). Returns nil
// when the key is missing or the value is not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object in JSON decodes to a non-nil, empty Options map. This
// simplifies call sites by removing the need to nil-check Options values.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
