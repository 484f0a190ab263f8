package gamejobs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `
<html><body>
<div class="job">
  <a class="title" href="/j/character-artist-at-polygonforge">3D Character Artist</a>
  <a class="company" href="/c/polygonforge">PolygonForge</a>
  <span class="location">Anywhere</span>
</div>
<div class="job">
  <a class="title" href="https://gamejobs.co/j/junior-artist-at-pixelbarn">Junior Character Artist</a>
  <span class="company">PixelBarn</span>
  <span class="location">Austin, TX</span>
</div>
<div class="job">
  <a class="title" href="/j/dup-at-pixelbarn">Duplicate Listing</a>
</div>
<div class="job">
  <a class="title" href="/j/dup-at-pixelbarn">Duplicate Listing</a>
</div>
<div class="job">
  <a class="title" href="">Empty Href</a>
</div>
</body></html>`

func TestParseListings(t *testing.T) {
	listings, err := ParseListings(strings.NewReader(searchFixture))
	require.NoError(t, err)
	require.Len(t, listings, 3, "duplicates and empty hrefs dropped")

	first := listings[0]
	assert.Equal(t, "3D Character Artist", first.Title)
	assert.Equal(t, "PolygonForge", first.Company)
	assert.Equal(t, "https://gamejobs.co/j/character-artist-at-polygonforge", first.URL)
	assert.Equal(t, "Remote", first.RemoteType, `"Anywhere" counts as remote`)
	assert.Equal(t, "Remote", first.LocationRaw)
	assert.True(t, strings.HasPrefix(first.ExternalID, "gamejobs_"))

	second := listings[1]
	assert.Equal(t, "PixelBarn", second.Company)
	assert.Equal(t, "Austin, TX", second.LocationRaw)
	assert.Equal(t, "", second.RemoteType)

	third := listings[2]
	assert.Equal(t, "Unknown", third.Company, "missing company falls back")
}

func TestParseListingsFallbackSelector(t *testing.T) {
	html := `
<html><body>
<div class="job">
  <a href="/j/character-artist">Character Artist</a>
</div>
</body></html>`

	listings, err := ParseListings(strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Character Artist", listings[0].Title)
}

func TestParseListingsEmpty(t *testing.T) {
	listings, err := ParseListings(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, listings)
}
