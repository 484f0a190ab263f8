package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertFixture = `
<html><body>
<p>New jobs matching your search:</p>
<a href="https://www.artstation.com/jobs/4242?utm_campaign=alert">Character Artist at Glassfall</a><br>
<a href="https://hitmarker.net/jobs/5151-junior-character-artist">Junior Character Artist</a><br>
<a href="https://hitmarker.net/jobs/5151-junior-character-artist">Junior Character Artist</a><br>
<a href="https://example.com/jobs/9999">Not a known board</a><br>
<a href="https://gamejobs.co/about">No jobs path</a><br>
<a href="https://www.artstation.com/jobs/1">tiny</a>
<a href="https://www.artstation.com/unsubscribe">Unsubscribe from these alerts</a>
</body></html>`

func TestParseAlertHTML(t *testing.T) {
	sent := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	listings := ParseAlertHTML(alertFixture, sent)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "Character Artist at Glassfall", first.Title)
	assert.Equal(t, "ArtStation", first.Platform, "board platform wins over Email")
	assert.Equal(t, "artstation_4242", first.ExternalID)
	assert.Equal(t, "https://www.artstation.com/jobs/4242", first.URL, "tracking params stripped")
	assert.Equal(t, "Unknown", first.Company)
	require.NotNil(t, first.PostedAt)
	assert.Equal(t, sent, *first.PostedAt)

	second := listings[1]
	assert.Equal(t, "Junior Character Artist", second.Title)
	assert.Equal(t, "hitmarker_5151", second.ExternalID)
}

func TestParseAlertHTMLZeroDate(t *testing.T) {
	listings := ParseAlertHTML(`<a href="https://gamejobs.co/jobs/77">Character Artist</a>`, time.Time{})
	require.Len(t, listings, 1)
	require.NotNil(t, listings[0].PostedAt)
	assert.False(t, listings[0].PostedAt.IsZero())
}

func TestSubjectMatches(t *testing.T) {
	assert.True(t, subjectMatches("Your job alert: 5 new jobs", []string{"job alert"}))
	assert.True(t, subjectMatches("anything", nil))
	assert.False(t, subjectMatches("Weekly newsletter", []string{"job alert", "new jobs"}))
}
