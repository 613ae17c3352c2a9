package runner

import (
	"context"
	"time"

	"jexam/internal/master"
	"jexam/internal/materialize"
	"jexam/internal/plan"
)

// versionJobDeps bundles the shared, read-only inputs every version job needs.
type versionJobDeps struct {
	master   *master.Master
	opts     materialize.Options
	writer   *outputWriter
	observer RunObserver
}

// versionJobResult captures the outcome of one version's materialize+write.
type versionJobResult struct {
	index    int
	document materialize.Document
	summary  VersionSummary
	err      error
}

// runVersionJobsSequential materializes versions one at a time.
func runVersionJobsSequential(ctx context.Context, assignments []plan.Assignment, deps versionJobDeps) ([]materialize.Document, []VersionSummary, error) {
	documents := make([]materialize.Document, 0, len(assignments))
	summaries := make([]VersionSummary, 0, len(assignments))
	for index, assignment := range assignments {
		result := executeVersionJob(ctx, deps, index, assignment)
		if result.err != nil {
			return nil, nil, result.err
		}
		documents = append(documents, result.document)
		summaries = append(summaries, result.summary)
	}
	return documents, summaries, nil
}

// runVersionJobsConcurrent materializes versions in parallel workers and
// preserves assignment ordering in the results.
func runVersionJobsConcurrent(ctx context.Context, assignments []plan.Assignment, workers int, deps versionJobDeps) ([]materialize.Document, []VersionSummary, error) {
	documents := make([]materialize.Document, len(assignments))
	summaries := make([]VersionSummary, len(assignments))
	jobCh := make(chan int)
	resultCh := make(chan versionJobResult, len(assignments))

	for w := 0; w < workers; w++ {
		go func() {
			for index := range jobCh {
				resultCh <- executeVersionJob(ctx, deps, index, assignments[index])
			}
		}()
	}
	go func() {
		for index := range assignments {
			jobCh <- index
		}
		close(jobCh)
	}()

	var firstErr error
	for i := 0; i < len(assignments); i++ {
		result := <-resultCh
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		documents[result.index] = result.document
		summaries[result.index] = result.summary
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return documents, summaries, nil
}

// executeVersionJob materializes a single version and writes its directory.
func executeVersionJob(ctx context.Context, deps versionJobDeps, index int, assignment plan.Assignment) versionJobResult {
	if err := ctx.Err(); err != nil {
		return versionJobResult{index: index, err: err}
	}
	deps.observer.OnVersionEvent(VersionEvent{
		Version:   assignment.Version,
		Ordinal:   assignment.Ordinal,
		Type:      VersionMaterializing,
		EmittedAt: time.Now(),
	})

	doc, err := materialize.Materialize(deps.master, assignment, deps.opts)
	if err != nil {
		deps.observer.OnVersionEvent(VersionEvent{
			Version:   assignment.Version,
			Ordinal:   assignment.Ordinal,
			Type:      VersionFailed,
			Error:     err.Error(),
			EmittedAt: time.Now(),
		})
		return versionJobResult{index: index, err: err}
	}

	deps.observer.OnVersionEvent(VersionEvent{
		Version:   assignment.Version,
		Ordinal:   assignment.Ordinal,
		Type:      VersionWriting,
		Questions: len(doc.Keys),
		EmittedAt: time.Now(),
	})

	dir, err := deps.writer.writeVersion(doc)
	if err != nil {
		deps.observer.OnVersionEvent(VersionEvent{
			Version:   assignment.Version,
			Ordinal:   assignment.Ordinal,
			Type:      VersionFailed,
			Error:     err.Error(),
			EmittedAt: time.Now(),
		})
		return versionJobResult{index: index, err: err}
	}

	points := 0.0
	for _, key := range doc.Keys {
		points += key.Points
	}
	deps.observer.OnVersionEvent(VersionEvent{
		Version:   assignment.Version,
		Ordinal:   assignment.Ordinal,
		Type:      VersionWritten,
		Questions: len(doc.Keys),
		Points:    points,
		EmittedAt: time.Now(),
	})
	return versionJobResult{
		index:    index,
		document: doc,
		summary: VersionSummary{
			Version:     assignment.Version,
			Ordinal:     assignment.Ordinal,
			Questions:   len(doc.Keys),
			TotalPoints: points,
			Choices:     assignment.Choices,
			Dir:         dir,
		},
	}
}
