package scrape

import (
	"context"
	"database/sql"
	"log"
	"time"

	"artjobs-engine/internal/classify"
	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
	"artjobs-engine/internal/store"
)

// ProcessListings filters, classifies and inserts one fetcher's output.
// notifyJob (optional) fires for newly inserted rows at or above
// classify.notify_min_score.
func ProcessListings(ctx context.Context, db *sql.DB, cfg config.Config,
	listings []domain.JobListing, onNewJob func(), notifyJob func(store.Job)) (added int) {

	clf := classify.Classifier{Cfg: cfg}

	for _, lead := range listings {
		keep, why := ShouldKeepListing(cfg, lead)
		if !keep {
			log.Printf("[%s] skipped (%s) title=%q loc=%q url=%q",
				lead.Platform, why, lead.Title, lead.LocationRaw, lead.URL)
			continue
		}

		j := jobFromListing(lead, clf)

		ok, err := store.InsertJobIgnore(ctx, db, j)
		if err != nil {
			log.Printf("[process:%s] insert error: %v title=%q url=%q external_id=%q",
				lead.Platform, err, lead.Title, lead.URL, j.ExternalID)
			continue
		}
		if !ok {
			continue // duplicate
		}

		added++
		if onNewJob != nil {
			onNewJob()
		}
		if notifyJob != nil && j.RelevanceScore >= cfg.Classify.NotifyMinScore {
			notifyJob(j)
		}
	}

	return added
}

func jobFromListing(lead domain.JobListing, clf classify.Classifier) store.Job {
	res := clf.Classify(lead)

	scraped := lead.ScrapedAt
	if scraped.IsZero() {
		scraped = time.Now().UTC()
	}
	posted := ""
	if lead.PostedAt != nil && !lead.PostedAt.IsZero() {
		posted = lead.PostedAt.UTC().Format(time.RFC3339)
	}

	return store.Job{
		Platform:          lead.Platform,
		ExternalID:        lead.ExternalID,
		Title:             lead.Title,
		Company:           lead.Company,
		Location:          lead.LocationRaw,
		RemoteType:        lead.RemoteType,
		URL:               lead.URL,
		Description:       lead.Description,
		CompanySize:       lead.CompanySize,
		CompanyType:       lead.CompanyType,
		IsCharacterArtist: res.IsCharacterArtist,
		IsEntryLevel:      res.IsEntryLevel,
		RelevanceScore:    res.Relevance,
		Tags:              res.Tags,
		PostedAt:          posted,
		ScrapedAt:         scraped.Format(time.RFC3339),
	}
}
