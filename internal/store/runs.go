package store

import (
	"context"
	"database/sql"
	"time"

	"artjobs-engine/internal/domain"
)

func StartRun(ctx context.Context, db *sql.DB, scraperName, platform string) (int64, error) {
	res, err := db.ExecContext(ctx, `
INSERT INTO scrape_runs(scraper_name, platform, status, started_at)
VALUES(?,?,?,?);`,
		scraperName, platform, domain.RunRunning, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func FinishRun(ctx context.Context, db *sql.DB, runID int64, status string, found, saved int, errMsg string) error {
	_, err := db.ExecContext(ctx, `
UPDATE scrape_runs
SET status = ?, jobs_found = ?, jobs_saved = ?, error_message = ?, finished_at = ?
WHERE id = ?;`,
		status, found, saved, errMsg, time.Now().UTC().Format(time.RFC3339), runID)
	return err
}

type RunRow struct {
	ID          int64  `json:"id"`
	ScraperName string `json:"scraper_name"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	JobsFound   int    `json:"jobs_found"`
	JobsSaved   int    `json:"jobs_saved"`
	ErrorMsg    string `json:"error_message,omitempty"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at,omitempty"`
}

func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]RunRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, scraper_name, platform, status, jobs_found, jobs_saved, error_message,
       started_at, COALESCE(finished_at, '')
FROM scrape_runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.ScraperName, &r.Platform, &r.Status,
			&r.JobsFound, &r.JobsSaved, &r.ErrorMsg, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
