package domain

import "time"

// JobListing is the normalized record every platform fetcher produces
// before classification and insert.
type JobListing struct {
	Platform    string // ArtStation / GameJobs / Hitmarker / Email
	ExternalID  string // unique within a platform
	Title       string
	Company     string
	LocationRaw string
	RemoteType  string // Remote/Hybrid/Onsite or empty
	URL         string
	Description string
	CompanySize string
	CompanyType string
	PostedAt    *time.Time
	ScrapedAt   time.Time
}
