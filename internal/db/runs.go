package db

import (
	"context"
	"fmt"
	"time"

	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// timeFormat is how timestamps are stored; modernc.org/sqlite does not
// write time.Time in a form SQLite's date functions understand.
const timeFormat = "2006-01-02 15:04:05"

// InsertRun records one analysis run.
func (db *DB) InsertRun(run *models.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs (
			timestamp, dataset_path, num_examples, num_issues,
			total_tokens, assistant_tokens, truncated, epochs, billed_tokens
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := run.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.Format(timeFormat),
		run.DatasetPath,
		run.NumExamples,
		run.NumIssues,
		run.TotalTokens,
		run.AssistantTokens,
		run.Truncated,
		run.Epochs,
		run.BilledTokens,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		run.ID = id
	}

	return nil
}

// GetRecentRuns returns the most recent analysis runs, newest first.
func (db *DB) GetRecentRuns(limit int) ([]models.AnalysisRun, error) {
	query := `
		SELECT id, timestamp, dataset_path, num_examples, num_issues,
		       total_tokens, assistant_tokens, truncated, epochs, billed_tokens
		FROM analysis_runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		err := rows.Scan(
			&run.ID,
			&run.Timestamp,
			&run.DatasetPath,
			&run.NumExamples,
			&run.NumIssues,
			&run.TotalTokens,
			&run.AssistantTokens,
			&run.Truncated,
			&run.Epochs,
			&run.BilledTokens,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetBilledTrend returns billed token totals for the most recent runs of
// a dataset, oldest first, for trend charts.
func (db *DB) GetBilledTrend(datasetPath string, limit int) ([]float64, error) {
	query := `
		SELECT billed_tokens FROM (
			SELECT id, billed_tokens
			FROM analysis_runs
			WHERE dataset_path = ?
			ORDER BY timestamp DESC, id DESC
			LIMIT ?
		) ORDER BY id ASC
	`

	rows, err := db.QueryContext(context.Background(), query, datasetPath, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query billed trend: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var trend []float64
	for rows.Next() {
		var billed int64
		if err := rows.Scan(&billed); err != nil {
			return nil, fmt.Errorf("failed to scan billed tokens: %w", err)
		}
		trend = append(trend, float64(billed))
	}

	return trend, rows.Err()
}

// PruneRuns deletes runs older than the retention window.
func (db *DB) PruneRuns(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Format(timeFormat)
	result, err := db.ExecContext(context.Background(),
		`DELETE FROM analysis_runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return result.RowsAffected()
}
