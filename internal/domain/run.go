package domain

import "time"

const (
	RunRunning = "running"
	RunSuccess = "success"
	RunError   = "error"
)

// ScrapeRun is one execution of one platform fetcher.
type ScrapeRun struct {
	ID          int64
	ScraperName string
	Platform    string
	Status      string // running/success/error
	JobsFound   int
	JobsSaved   int
	ErrorMsg    string
	StartedAt   time.Time
	FinishedAt  *time.Time
}
