package artstation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardFixture = `
<html><body>
<div class="job-grid">
  <div class="job-grid-item">
    <a href="/jobs/12345">
      <div class="job-grid-item-title-holder">Junior Character Artist</div>
    </a>
    <div class="job-grid-item-company">Wildlight Studio</div>
    <div class="job-grid-item-info">Remote &middot; Full-time</div>
  </div>
  <div class="job-grid-item">
    <a href="https://www.artstation.com/jobs/67890?utm_source=board">
      <h2>Senior Character Artist</h2>
    </a>
    <div class="job-grid-item-company">Ironforge Games</div>
    <div class="job-grid-item-info">Montreal, Canada</div>
  </div>
  <div class="job-grid-item">
    <!-- no link, dropped -->
    <div class="job-grid-item-title-holder">Ghost Card</div>
    <div class="job-grid-item-company">Nowhere Inc</div>
  </div>
  <div class="job-grid-item">
    <a href="/jobs/222"><h3>No Company Card</h3></a>
  </div>
</div>
</body></html>`

func TestParseListings(t *testing.T) {
	listings, err := ParseListings(boardFixture)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "Junior Character Artist", first.Title)
	assert.Equal(t, "Wildlight Studio", first.Company)
	assert.Equal(t, "artstation_12345", first.ExternalID)
	assert.Equal(t, "https://www.artstation.com/jobs/12345", first.URL)
	assert.Equal(t, "Remote", first.RemoteType)

	second := listings[1]
	assert.Equal(t, "Senior Character Artist", second.Title)
	assert.Equal(t, "artstation_67890", second.ExternalID)
	assert.Equal(t, "https://www.artstation.com/jobs/67890", second.URL, "tracking params stripped")
	assert.Equal(t, "Montreal, Canada", second.LocationRaw)
	assert.Equal(t, "", second.RemoteType)
}

func TestParseListingsFallbackSelectors(t *testing.T) {
	html := `
<html><body>
<article>
  <a href="/jobs/31337"><h2>Character Artist</h2></a>
  <span class="company-name">Tiny Team</span>
</article>
</body></html>`

	listings, err := ParseListings(html)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Character Artist", listings[0].Title)
	assert.Equal(t, "Tiny Team", listings[0].Company)
}

func TestParseListingsEmptyPage(t *testing.T) {
	listings, err := ParseListings("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, listings)
}
