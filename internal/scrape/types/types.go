package types

import (
	"context"

	"artjobs-engine/internal/domain"
)

type ScrapeResult struct {
	Source   string
	Listings []domain.JobListing
}

type ScrapeStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

// Fetcher is implemented by every platform scraper. Name is the lowercase
// selector the API and CLI use; Platform is the display name stored on jobs
// and runs, so rows from both tables join on the same values.
type Fetcher interface {
	Name() string
	Platform() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}
