package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"jexam/internal/manifest"
	"jexam/internal/runner"
)

// Stats summarizes one ingest call. Counts cover rows submitted, not rows
// newly inserted; re-ingesting a run reports the same counts.
type Stats struct {
	RunKey     string
	Versions   int
	Choices    int
	KeyEntries int
}

// Ingest loads a completed run's results.json and manifest.json from its
// output directory and records them. Inserts are keyed by content
// fingerprints with ON CONFLICT DO NOTHING, so ingestion is idempotent.
func Ingest(ctx context.Context, db *sql.DB, outputDir string) (Stats, error) {
	if ctx == nil {
		return Stats{}, errors.New("audit: context is nil")
	}
	if db == nil {
		return Stats{}, errors.New("audit: db is nil")
	}

	var results runner.Results
	if err := readJSON(filepath.Join(outputDir, "results.json"), &results); err != nil {
		return Stats{}, err
	}
	var m manifest.Manifest
	if err := readJSON(filepath.Join(outputDir, "manifest.json"), &m); err != nil {
		return Stats{}, err
	}

	runKey, err := FingerprintJSON(map[string]any{
		"master": results.MasterPath,
		"seed":   results.Seed,
		"format": results.Format,
		"run_id": results.RunID,
	})
	if err != nil {
		return Stats{}, err
	}
	runID := uuid.NewString()
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, run_key, generated_id, master, seed, format, version_count, started_at, finished_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, now())
		 ON CONFLICT (run_key) DO NOTHING`,
		runID,
		runKey,
		results.RunID,
		results.MasterPath,
		results.Seed,
		results.Format,
		results.VersionCount,
		results.StartedAt,
		results.FinishedAt,
	); err != nil {
		return Stats{}, fmt.Errorf("insert run: %w", err)
	}
	storedRunID, err := lookupID(ctx, db, "runs", "run_id", "run_key", runKey)
	if err != nil {
		return Stats{}, fmt.Errorf("lookup run id: %w", err)
	}

	stats := Stats{RunKey: runKey}
	for _, version := range results.Versions {
		if err := insertVersion(ctx, db, storedRunID, runKey, version); err != nil {
			return Stats{}, err
		}
		stats.Versions++
		for questionID, variant := range version.Choices {
			if err := insertAssignment(ctx, db, storedRunID, runKey, version.Version, questionID, variant); err != nil {
				return Stats{}, err
			}
			stats.Choices++
		}
	}
	for _, version := range m.Versions {
		for _, entry := range version.Entries {
			if err := insertKeyEntry(ctx, db, storedRunID, runKey, version.Version, entry); err != nil {
				return Stats{}, err
			}
			stats.KeyEntries++
		}
	}
	return stats, nil
}

func insertVersion(ctx context.Context, db *sql.DB, runID, runKey string, version runner.VersionSummary) error {
	key, err := FingerprintJSON(map[string]any{
		"run_key": runKey,
		"version": version.Version,
	})
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO exam_versions (version_id, version_key, run_id, version, ordinal, questions, total_points, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, now())
		 ON CONFLICT (version_key) DO NOTHING`,
		uuid.NewString(),
		key,
		runID,
		version.Version,
		version.Ordinal,
		version.Questions,
		version.TotalPoints,
	); err != nil {
		return fmt.Errorf("insert version %s: %w", version.Version, err)
	}
	return nil
}

func insertAssignment(ctx context.Context, db *sql.DB, runID, runKey, version, questionID string, variant int) error {
	key, err := FingerprintJSON(map[string]any{
		"run_key":  runKey,
		"version":  version,
		"question": questionID,
	})
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO assignments (assignment_id, assignment_key, run_id, version, question_id, variant_index, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, now())
		 ON CONFLICT (assignment_key) DO NOTHING`,
		uuid.NewString(),
		key,
		runID,
		version,
		questionID,
		variant,
	); err != nil {
		return fmt.Errorf("insert assignment %s/%s: %w", version, questionID, err)
	}
	return nil
}

func insertKeyEntry(ctx context.Context, db *sql.DB, runID, runKey, version string, entry manifest.Entry) error {
	key, err := FingerprintJSON(map[string]any{
		"run_key":  runKey,
		"version":  version,
		"question": entry.QuestionID,
		"variant":  entry.VariantIndex,
	})
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO answer_key_entries (entry_id, entry_key, run_id, version, question_id, variant_index, points, grading_mode, check_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, now())
		 ON CONFLICT (entry_key) DO NOTHING`,
		uuid.NewString(),
		key,
		runID,
		version,
		entry.QuestionID,
		entry.VariantIndex,
		entry.Points,
		string(entry.Mode),
		entry.CheckName,
	); err != nil {
		return fmt.Errorf("insert key entry %s/%s: %w", version, entry.QuestionID, err)
	}
	return nil
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, db *sql.DB, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func readJSON(path string, out any) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
