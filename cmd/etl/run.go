package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"deliveryetl/internal/config"
	"deliveryetl/internal/datasource"
	"deliveryetl/internal/datasource/file"
	"deliveryetl/internal/metrics"
	"deliveryetl/internal/parser/csv"
	"deliveryetl/internal/report"
	"deliveryetl/internal/schema"
	"deliveryetl/internal/storage/csvfile"
	"deliveryetl/internal/transformer"
	"deliveryetl/internal/transformer/builtin"
)

// stageFactories maps config stage kinds to constructors. The key set must
// stay in sync with config.KnownStageKinds; a test enforces that.
var stageFactories = map[string]func(config.Options) transformer.Stage{
	"tidy_strings": func(config.Options) transformer.Stage { return builtin.TidyStrings{} },
	"clean_times": func(o config.Options) transformer.Stage {
		return builtin.CleanTimes{Column: o.String("column", schema.ColTimeOrdered)}
	},
	"clean_dates":       func(config.Options) transformer.Stage { return builtin.CleanDates{} },
	"enforce_ranges":    func(config.Options) transformer.Stage { return builtin.EnforceRanges{} },
	"scrub_coordinates": func(config.Options) transformer.Stage { return builtin.ScrubCoordinates{} },
	"intervals":         func(config.Options) transformer.Stage { return builtin.Intervals{} },
	"standardize_units": func(config.Options) transformer.Stage { return builtin.StandardizeUnits{} },
	"impute":            func(config.Options) transformer.Stage { return builtin.Impute{} },
	"clip_outliers":     func(config.Options) transformer.Stage { return builtin.ClipOutliers{} },
	"dedup":             func(config.Options) transformer.Stage { return builtin.DeDup{} },
}

// defaultStages is the canonical cleaning chain, used when the config does
// not override the transform section. Order matters: repairs run on raw
// strings first, intervals need the minute columns, imputation precedes
// outlier clipping, and dedup runs last so every removal decision sees
// repaired values.
func defaultStages() []transformer.Stage {
	return []transformer.Stage{
		builtin.TidyStrings{},
		builtin.CleanTimes{Column: schema.ColTimeOrdered},
		builtin.CleanTimes{Column: schema.ColTimePicked},
		builtin.CleanDates{},
		builtin.EnforceRanges{},
		builtin.ScrubCoordinates{},
		builtin.Intervals{},
		builtin.StandardizeUnits{},
		builtin.Impute{},
		builtin.ClipOutliers{},
		builtin.DeDup{},
	}
}

func buildStages(p config.Pipeline) ([]transformer.Stage, error) {
	if len(p.Transform) == 0 {
		return defaultStages(), nil
	}
	stages := make([]transformer.Stage, 0, len(p.Transform))
	for i, t := range p.Transform {
		factory, ok := stageFactories[t.Kind]
		if !ok {
			return nil, fmt.Errorf("transform[%d]: unknown stage kind %q", i, t.Kind)
		}
		stages = append(stages, factory(t.Options))
	}
	return stages, nil
}

func buildSource(p config.Pipeline) (datasource.Source, error) {
	switch p.Source.Kind {
	case "", "file":
		return file.NewLocal(p.Source.File.Path), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", p.Source.Kind)
	}
}

func buildParser(p config.Pipeline) (*csv.Parser, error) {
	switch p.Parser.Kind {
	case "", "csv":
		o := p.Parser.Options
		return csv.NewParser(csv.Options{
			HasHeader:      o.Bool("has_header", true),
			Comma:          o.Rune("comma", ','),
			TrimSpace:      o.Bool("trim_space", true),
			ExpectedFields: o.Int("expected_fields", 0),
			HeaderMap:      o.StringMap("header_map"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown parser kind %q", p.Parser.Kind)
	}
}

// run executes one full batch: load, clean, derive the output variants, and
// write the files plus the quality report.
func run(ctx context.Context, p config.Pipeline) error {
	src, err := buildSource(p)
	if err != nil {
		return err
	}
	parser, err := buildParser(p)
	if err != nil {
		return err
	}
	stages, err := buildStages(p)
	if err != nil {
		return err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	raw, err := parser.Parse(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	inputRows := raw.Nrow()
	metrics.RecordRows(p.Job, "rows_in", int64(inputRows))

	iss := report.NewIssues()
	chain := transformer.Chain{Job: p.Job, Stages: stages}
	cleaned, err := chain.Apply(raw, iss)
	if err != nil {
		return err
	}
	metrics.RecordRows(p.Job, "rows_out", int64(cleaned.Nrow()))
	recordIssueMetrics(p.Job, iss)

	clean := cleaned.Select(schema.CleanColumns())
	if clean.Err != nil {
		return fmt.Errorf("select clean columns: %w", clean.Err)
	}

	variants := []csvfile.Variant{{Name: p.Output.Clean, Frame: clean}}

	if p.Output.Featured != "" {
		withFeatures, err := (builtin.Features{}).Apply(cleaned, iss)
		if err != nil {
			return fmt.Errorf("derive features: %w", err)
		}
		featured := withFeatures.Select(schema.FeaturedColumns())
		if featured.Err != nil {
			return fmt.Errorf("select featured columns: %w", featured.Err)
		}
		variants = append(variants, csvfile.Variant{Name: p.Output.Featured, Frame: featured})
	}

	if p.Output.Normalized != "" {
		scaled, err := (builtin.MinMaxScale{}).Apply(clean, iss)
		if err != nil {
			return fmt.Errorf("scale: %w", err)
		}
		variants = append(variants, csvfile.Variant{Name: p.Output.Normalized, Frame: scaled})
	}

	w := csvfile.NewWriter(p.Output.Dir)
	if err := w.WriteAll(ctx, variants); err != nil {
		return err
	}

	rep := report.Build(p.Job, inputRows, clean, iss)
	if p.Output.Report != "" {
		path := filepath.Join(p.Output.Dir, p.Output.Report)
		if err := os.WriteFile(path, rep.Render(), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if p.Output.ReportXLSX != "" {
		if err := rep.WriteXLSX(filepath.Join(p.Output.Dir, p.Output.ReportXLSX)); err != nil {
			return fmt.Errorf("write xlsx report: %w", err)
		}
	}
	return nil
}

// recordIssueMetrics rolls the per-column issue counters up into the coarse
// record metrics exposed to the backend.
func recordIssueMetrics(job string, iss *report.Issues) {
	var imputed, dupes, capped int64
	for _, k := range iss.Keys() {
		n := int64(iss.Count(k))
		switch {
		case strings.HasSuffix(k, "_missing_filled"):
			imputed += n
		case strings.HasPrefix(k, "duplicates_removed"):
			dupes += n
		case k == "outliers_capped":
			capped += n
		}
	}
	metrics.RecordRows(job, "cells_imputed", imputed)
	metrics.RecordRows(job, "duplicates_removed", dupes)
	metrics.RecordRows(job, "outliers_capped", capped)
}
