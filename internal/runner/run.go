// Package runner orchestrates exam generation: parse the master, plan
// variant assignments, materialize and write every version, then aggregate
// the grading manifest. Planning happens before any artifact is written, so
// a failing run leaves no partial output tree behind.
package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"jexam/internal/config"
	"jexam/internal/grader"
	"jexam/internal/manifest"
	"jexam/internal/master"
	"jexam/internal/materialize"
	"jexam/internal/notebook"
	"jexam/internal/plan"
	"jexam/internal/spec"
)

// Params are the per-invocation knobs layered over the master's own config.
// Zero values defer to the config; non-zero values win.
type Params struct {
	MasterPath string
	OutputDir  string
	Seed       *int64
	Count      int
	Format     string
	Strict     *bool
	Workers    int
	Observer   RunObserver
}

// Run executes the full generation pipeline and writes all artifacts under
// Params.OutputDir.
func Run(ctx context.Context, params Params) (Results, error) {
	observer := params.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	started := time.Now()

	runID, err := NewRunID()
	if err != nil {
		return Results{}, fmt.Errorf("make run id: %w", err)
	}

	nb, err := notebook.Read(params.MasterPath)
	if err != nil {
		return Results{}, err
	}
	m, err := master.Parse(nb)
	if err != nil {
		return Results{}, fmt.Errorf("parse master: %w", err)
	}

	cfg := m.Config
	config.Normalize(&cfg)
	applyOverrides(&cfg, params)
	if err := config.Validate(&cfg); err != nil {
		return Results{}, fmt.Errorf("validate config: %w", err)
	}

	request := plan.Request{
		Count:    cfg.NumExams,
		Students: cfg.Students,
		Seed:     cfg.Seed,
		Strict:   cfg.Strict,
	}
	assignments, err := plan.Build(m.Catalog, request)
	if err != nil {
		return Results{}, err
	}

	if err := os.MkdirAll(params.OutputDir, 0o755); err != nil {
		return Results{}, fmt.Errorf("create output dir: %w", err)
	}
	writer := newOutputWriter(params.OutputDir, cfg)
	observer.OnRunStart(runID, params.MasterPath, len(assignments.Assignments))
	for _, assignment := range assignments.Assignments {
		observer.OnVersionEvent(VersionEvent{
			Version:   assignment.Version,
			Ordinal:   assignment.Ordinal,
			Type:      VersionQueued,
			EmittedAt: time.Now(),
		})
	}

	okName := grader.OKName(writer.notebookName + ".ipynb")
	opts := materialize.OptionsFrom(cfg, okName)
	deps := versionJobDeps{master: m, opts: opts, writer: writer, observer: observer}

	var documents []materialize.Document
	var summaries []VersionSummary
	if cfg.Workers <= 1 {
		documents, summaries, err = runVersionJobsSequential(ctx, assignments.Assignments, deps)
	} else {
		documents, summaries, err = runVersionJobsConcurrent(ctx, assignments.Assignments, cfg.Workers, deps)
	}
	if err != nil {
		return Results{}, err
	}

	if err := writer.writeAutograder(m, opts); err != nil {
		return Results{}, err
	}

	aggregate, err := manifest.Aggregate(m, cfg.Seed, cfg.Format, documents)
	if err != nil {
		return Results{}, err
	}
	if err := writer.writeManifest(aggregate); err != nil {
		return Results{}, err
	}

	finished := time.Now()
	results := Results{
		RunID:           runID,
		MasterPath:      params.MasterPath,
		OutputDir:       params.OutputDir,
		Seed:            cfg.Seed,
		Format:          cfg.Format,
		VersionCount:    len(summaries),
		QuestionCount:   len(m.Questions),
		VariantGroups:   m.Catalog.Len(),
		Versions:        summaries,
		StartedAt:       started.UTC(),
		FinishedAt:      finished.UTC(),
		DurationSeconds: finished.Sub(started).Seconds(),
	}
	for _, advisory := range assignments.Advisories {
		results.Advisories = append(results.Advisories, advisory.String())
	}
	if err := writer.writeResults(results); err != nil {
		return Results{}, err
	}
	observer.OnRunEnd(results)
	return results, nil
}

// applyOverrides layers CLI flags over the master's exam config.
func applyOverrides(cfg *spec.ExamConfig, params Params) {
	if params.Seed != nil {
		cfg.Seed = *params.Seed
	}
	if params.Count > 0 {
		cfg.NumExams = params.Count
		cfg.Students = nil
	}
	if params.Format != "" {
		cfg.Format = params.Format
	}
	if params.Strict != nil {
		cfg.Strict = *params.Strict
	}
	if params.Workers > 0 {
		cfg.Workers = params.Workers
	}
}
