// Package config provides configuration models and helpers for cleaning
// pipelines.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "source.file.path",
// "transform[1].kind"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// KnownStageKinds lists the stage kinds the runner can construct from a
// transform override. Kept here so config validation and the stage factory
// cannot drift apart silently: the factory test asserts both sets match.
var KnownStageKinds = []string{
	"tidy_strings",
	"clean_times",
	"clean_dates",
	"enforce_ranges",
	"scrub_coordinates",
	"intervals",
	"standardize_units",
	"impute",
	"clip_outliers",
	"dedup",
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue
// values. Callers may decide whether to treat warnings as fatal or not.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and the report fall back to a generic name",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransforms(p.Transform)...)
	issues = append(issues, validateOutput(p.Output)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	switch s.Kind {
	case "", "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "path to the raw CSV is required",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q (expected \"file\")", s.Kind),
		})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	switch p.Kind {
	case "", "csv":
		if c := p.Options.String("comma", ","); len([]rune(c)) != 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.comma",
				Message:  fmt.Sprintf("delimiter must be a single character, got %q", c),
			})
		}
		if n := p.Options.Int("expected_fields", 0); n < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.expected_fields",
				Message:  "expected_fields must be >= 0",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q (expected \"csv\")", p.Kind),
		})
	}
	return issues
}

func validateTransforms(ts []Transform) []Issue {
	var issues []Issue

	known := make(map[string]struct{}, len(KnownStageKinds))
	for _, k := range KnownStageKinds {
		known[k] = struct{}{}
	}
	for i, t := range ts {
		if _, ok := known[t.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("transform[%d].kind", i),
				Message:  fmt.Sprintf("unknown stage kind %q", t.Kind),
			})
		}
	}
	return issues
}

func validateOutput(o Output) []Issue {
	var issues []Issue

	if strings.TrimSpace(o.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.dir",
			Message:  "output directory is required",
		})
	}
	if strings.TrimSpace(o.Clean) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.clean",
			Message:  "the clean variant is mandatory; name its file",
		})
	}
	if o.Featured == "" && o.Normalized == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "output",
			Message:  "neither featured nor normalized variants are enabled",
		})
	}
	return issues
}
