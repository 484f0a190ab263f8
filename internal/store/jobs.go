package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Job struct {
	ID                int64    `json:"id"`
	Platform          string   `json:"platform"`
	ExternalID        string   `json:"external_id"`
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location"`
	RemoteType        string   `json:"remote_type"`
	URL               string   `json:"url"`
	Description       string   `json:"description,omitempty"`
	CompanySize       string   `json:"company_size,omitempty"`
	CompanyType       string   `json:"company_type,omitempty"`
	IsCharacterArtist bool     `json:"is_character_artist"`
	IsEntryLevel      bool     `json:"is_entry_level"`
	RelevanceScore    int      `json:"relevance_score"`
	Tags              []string `json:"tags"`
	PostedAt          string   `json:"posted_at,omitempty"`
	ScrapedAt         string   `json:"scraped_at"`
	UpdatedAt         string   `json:"updated_at"`
}

var ErrNotFound = errors.New("job not found")

// InsertJobIgnore inserts a listing, relying on uix_jobs_platform_external
// for dedup. Returns whether a new row was actually added.
func InsertJobIgnore(ctx context.Context, db *sql.DB, j Job) (added bool, err error) {
	if j.URL == "" {
		return false, errors.New("missing url")
	}
	if j.ScrapedAt == "" {
		j.ScrapedAt = time.Now().UTC().Format(time.RFC3339)
	}
	tagsB, _ := json.Marshal(j.Tags)

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs(platform, external_id, title, company, location, remote_type,
  url, description, company_size, company_type,
  is_character_artist, is_entry_level, relevance_score, tags,
  posted_at, scraped_at, updated_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		j.Platform, j.ExternalID, j.Title, j.Company, j.Location, j.RemoteType,
		j.URL, j.Description, j.CompanySize, j.CompanyType,
		boolToInt(j.IsCharacterArtist), boolToInt(j.IsEntryLevel), j.RelevanceScore, string(tagsB),
		nullable(j.PostedAt), j.ScrapedAt, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type ListJobsOpts struct {
	Platform      string
	CharacterOnly bool
	EntryOnly     bool
	MinRelevance  int // -1 = no filter
	Limit         int
	Offset        int
}

const jobCols = `id, platform, external_id, title, company, location, remote_type,
  url, description, company_size, company_type,
  is_character_artist, is_entry_level, relevance_score, tags,
  COALESCE(posted_at, ''), scraped_at, updated_at`

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) (jobs []Job, total int, err error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	var where []string
	var args []any
	if opts.Platform != "" {
		where = append(where, "platform = ?")
		args = append(args, opts.Platform)
	}
	if opts.CharacterOnly {
		where = append(where, "is_character_artist = 1")
	}
	if opts.EntryOnly {
		where = append(where, "is_entry_level = 1")
	}
	if opts.MinRelevance >= 0 {
		where = append(where, "relevance_score >= ?")
		args = append(args, opts.MinRelevance)
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	if err := db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM jobs %s;`, cond), args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
SELECT %s
FROM jobs
%s
ORDER BY relevance_score DESC, scraped_at DESC
LIMIT ? OFFSET ?;`, jobCols, cond)

	rows, err := db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func GetJob(ctx context.Context, db *sql.DB, id int64) (Job, error) {
	row := db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM jobs WHERE id = ?;`, jobCols), id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return j, err
}

func GetJobsByIDs(ctx context.Context, db *sql.DB, ids []int64) ([]Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM jobs WHERE id IN (%s) ORDER BY relevance_score DESC;`, jobCols, ph),
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// TopJobs returns the best character-artist listings by relevance.
func TopJobs(ctx context.Context, db *sql.DB, limit int, entryOnly bool) ([]Job, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	cond := "WHERE is_character_artist = 1"
	if entryOnly {
		cond += " AND is_entry_level = 1"
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s
FROM jobs
%s
ORDER BY relevance_score DESC, scraped_at DESC
LIMIT ?;`, jobCols, cond), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func DeleteJob(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	return err
}

type Stats struct {
	TotalJobs        int            `json:"total_jobs"`
	CharacterArtists int            `json:"character_artists"`
	EntryLevel       int            `json:"entry_level"`
	ByPlatform       map[string]int `json:"by_platform"`
}

func GetStats(ctx context.Context, db *sql.DB) (Stats, error) {
	st := Stats{ByPlatform: map[string]int{}}

	if err := db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(is_character_artist), 0),
       COALESCE(SUM(is_entry_level), 0)
FROM jobs;`).Scan(&st.TotalJobs, &st.CharacterArtists, &st.EntryLevel); err != nil {
		return st, err
	}

	rows, err := db.QueryContext(ctx, `SELECT platform, COUNT(*) FROM jobs GROUP BY platform;`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		var c int
		if err := rows.Scan(&p, &c); err != nil {
			return st, err
		}
		st.ByPlatform[p] = c
	}
	return st, rows.Err()
}

func ListPlatforms(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT platform FROM jobs ORDER BY platform;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (Job, error) {
	var j Job
	var tagsJSON string
	var isChar, isEntry int
	if err := r.Scan(
		&j.ID, &j.Platform, &j.ExternalID, &j.Title, &j.Company, &j.Location, &j.RemoteType,
		&j.URL, &j.Description, &j.CompanySize, &j.CompanyType,
		&isChar, &isEntry, &j.RelevanceScore, &tagsJSON,
		&j.PostedAt, &j.ScrapedAt, &j.UpdatedAt,
	); err != nil {
		return Job{}, err
	}
	j.IsCharacterArtist = isChar != 0
	j.IsEntryLevel = isEntry != 0
	_ = json.Unmarshal([]byte(tagsJSON), &j.Tags)
	return j, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
