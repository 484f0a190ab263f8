package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, Migrate(d.Pool))
	return d.Pool
}

func sampleJob(platform, externalID, title string) Job {
	return Job{
		Platform:          platform,
		ExternalID:        externalID,
		Title:             title,
		Company:           "Studio",
		Location:          "Remote",
		RemoteType:        "Remote",
		URL:               "https://example.com/jobs/" + externalID,
		IsCharacterArtist: true,
		IsEntryLevel:      true,
		RelevanceScore:    9,
		Tags:              []string{"stylized"},
	}
}

func TestInsertJobIgnoreDedup(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	added, err := InsertJobIgnore(ctx, db, sampleJob("artstation", "artstation_1", "Character Artist"))
	require.NoError(t, err)
	assert.True(t, added)

	// same (platform, external_id) is silently ignored
	added, err = InsertJobIgnore(ctx, db, sampleJob("artstation", "artstation_1", "Character Artist v2"))
	require.NoError(t, err)
	assert.False(t, added)

	// same external id on another platform is a distinct job
	added, err = InsertJobIgnore(ctx, db, sampleJob("hitmarker", "artstation_1", "Character Artist"))
	require.NoError(t, err)
	assert.True(t, added)

	st, err := GetStats(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalJobs)
}

func TestInsertJobIgnoreRequiresURL(t *testing.T) {
	db := testDB(t)
	j := sampleJob("artstation", "artstation_1", "Character Artist")
	j.URL = ""
	_, err := InsertJobIgnore(context.Background(), db, j)
	assert.Error(t, err)
}

func TestListJobsFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := sampleJob("artstation", "artstation_1", "Junior Character Artist")
	b := sampleJob("gamejobs", "gamejobs_2", "Senior Character Artist")
	b.IsEntryLevel = false
	b.RelevanceScore = 6
	c := sampleJob("gamejobs", "gamejobs_3", "Backend Engineer")
	c.IsCharacterArtist = false
	c.RelevanceScore = 3

	for _, j := range []Job{a, b, c} {
		_, err := InsertJobIgnore(ctx, db, j)
		require.NoError(t, err)
	}

	jobs, total, err := ListJobs(ctx, db, ListJobsOpts{MinRelevance: -1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Junior Character Artist", jobs[0].Title, "highest relevance first")

	jobs, total, err = ListJobs(ctx, db, ListJobsOpts{Platform: "gamejobs", MinRelevance: -1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, jobs, 2)

	jobs, total, err = ListJobs(ctx, db, ListJobsOpts{CharacterOnly: true, EntryOnly: true, MinRelevance: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "artstation_1", jobs[0].ExternalID)

	jobs, total, err = ListJobs(ctx, db, ListJobsOpts{MinRelevance: 6})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// pagination
	jobs, total, err = ListJobs(ctx, db, ListJobsOpts{MinRelevance: -1, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Character Artist", jobs[0].Title)
}

func TestGetJob(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := InsertJobIgnore(ctx, db, sampleJob("artstation", "artstation_1", "Character Artist"))
	require.NoError(t, err)

	jobs, _, err := ListJobs(ctx, db, ListJobsOpts{MinRelevance: -1})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	got, err := GetJob(ctx, db, jobs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Character Artist", got.Title)
	assert.Equal(t, []string{"stylized"}, got.Tags)

	_, err = GetJob(ctx, db, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopJobs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := sampleJob("artstation", "artstation_1", "Junior Character Artist")
	b := sampleJob("gamejobs", "gamejobs_2", "Senior Character Artist")
	b.IsEntryLevel = false
	c := sampleJob("gamejobs", "gamejobs_3", "Backend Engineer")
	c.IsCharacterArtist = false

	for _, j := range []Job{a, b, c} {
		_, err := InsertJobIgnore(ctx, db, j)
		require.NoError(t, err)
	}

	jobs, err := TopJobs(ctx, db, 10, false)
	require.NoError(t, err)
	assert.Len(t, jobs, 2, "non-character jobs excluded")

	jobs, err = TopJobs(ctx, db, 10, true)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "artstation_1", jobs[0].ExternalID)
}

func TestDeleteJob(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := InsertJobIgnore(ctx, db, sampleJob("artstation", "artstation_1", "Character Artist"))
	require.NoError(t, err)
	jobs, _, err := ListJobs(ctx, db, ListJobsOpts{MinRelevance: -1})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	require.NoError(t, DeleteJob(ctx, db, jobs[0].ID))
	_, err = GetJob(ctx, db, jobs[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunsLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	id, err := StartRun(ctx, db, "artstation", "artstation")
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	runs, err := ListRuns(ctx, db, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "running", runs[0].Status)
	assert.Empty(t, runs[0].FinishedAt)

	require.NoError(t, FinishRun(ctx, db, id, "success", 12, 4, ""))
	runs, err = ListRuns(ctx, db, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "success", runs[0].Status)
	assert.Equal(t, 12, runs[0].JobsFound)
	assert.Equal(t, 4, runs[0].JobsSaved)
	assert.NotEmpty(t, runs[0].FinishedAt)
}

func TestGetStatsByPlatform(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, j := range []Job{
		sampleJob("artstation", "artstation_1", "A"),
		sampleJob("artstation", "artstation_2", "B"),
		sampleJob("hitmarker", "hitmarker_1", "C"),
	} {
		_, err := InsertJobIgnore(ctx, db, j)
		require.NoError(t, err)
	}

	st, err := GetStats(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalJobs)
	assert.Equal(t, map[string]int{"artstation": 2, "hitmarker": 1}, st.ByPlatform)

	platforms, err := ListPlatforms(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"artstation", "hitmarker"}, platforms)
}
