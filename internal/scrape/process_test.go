package scrape

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
	"artjobs-engine/internal/store"
)

func processConfig() config.Config {
	var cfg config.Config
	cfg.Filters.RemoteOK = true
	cfg.Classify.CharacterKeywords = []string{"character artist"}
	cfg.Classify.EntryKeywords = []string{"junior"}
	cfg.Classify.SeniorKeywords = []string{"senior"}
	cfg.Classify.CharacterWeight = 6
	cfg.Classify.EntryWeight = 3
	cfg.Classify.NotifyMinScore = 8
	return cfg
}

func processDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, store.Migrate(d.Pool))
	return d.Pool
}

func listing(externalID, title string) domain.JobListing {
	return domain.JobListing{
		Platform:   "ArtStation",
		ExternalID: externalID,
		Title:      title,
		Company:    "Studio",
		URL:        "https://www.artstation.com/jobs/" + externalID,
		ScrapedAt:  time.Now().UTC(),
	}
}

func TestProcessListings(t *testing.T) {
	db := processDB(t)
	cfg := processConfig()

	var newJobs int
	var notified []store.Job

	leads := []domain.JobListing{
		listing("1", "Junior Character Artist"),  // relevance 9, notifies
		listing("2", "Senior Character Artist"),  // relevance 6, below notify floor
		listing("1", "Junior Character Artist"),  // duplicate external id
		{Platform: "ArtStation", Title: "No URL"},
		{Platform: "ArtStation", URL: "https://www.artstation.com/jobs/3", ExternalID: "3"}, // no title
	}

	added := ProcessListings(context.Background(), db, cfg, leads,
		func() { newJobs++ },
		func(j store.Job) { notified = append(notified, j) },
	)

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, newJobs)
	require.Len(t, notified, 1)
	assert.Equal(t, "Junior Character Artist", notified[0].Title)
	assert.Equal(t, 9, notified[0].RelevanceScore)

	st, err := store.GetStats(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalJobs)
	assert.Equal(t, 2, st.CharacterArtists)
	assert.Equal(t, 1, st.EntryLevel)
}

func TestProcessListingsLocationFilter(t *testing.T) {
	db := processDB(t)
	cfg := processConfig()
	cfg.Filters.LocationsBlock = []string{"texas"}

	blocked := listing("7", "Character Artist")
	blocked.LocationRaw = "Austin, Texas"

	added := ProcessListings(context.Background(), db, cfg,
		[]domain.JobListing{blocked}, nil, nil)
	assert.Equal(t, 0, added)
}

func TestBuildFetchers(t *testing.T) {
	var cfg config.Config
	cfg.Platforms.ArtStation.Enabled = true
	cfg.Platforms.Hitmarker.Enabled = true

	fetchers, err := BuildFetchers(cfg, nil)
	require.NoError(t, err)
	require.Len(t, fetchers, 2)
	assert.Equal(t, "artstation", fetchers[0].Name())
	assert.Equal(t, "hitmarker", fetchers[1].Name())

	// explicit selection overrides enabled flags
	fetchers, err = BuildFetchers(cfg, []string{"GameJobs"})
	require.NoError(t, err)
	require.Len(t, fetchers, 1)
	assert.Equal(t, "gamejobs", fetchers[0].Name())

	_, err = BuildFetchers(cfg, []string{"monster"})
	assert.Error(t, err)
}
