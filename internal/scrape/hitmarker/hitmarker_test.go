package hitmarker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `
<html><body>
<nav><a href="/jobs/">All</a></nav>
<article>
  <a href="/jobs/1001-character-artist-nebula">Character Artist</a>
  <span class="company">Nebula Interactive</span>
  <span class="location">Remote</span>
</article>
<article>
  <a href="https://hitmarker.net/jobs/1002-junior-3d-artist">Junior 3D Character Artist</a>
  <a href="https://hitmarker.net/jobs/1002-junior-3d-artist">Junior 3D Character Artist</a>
  <span class="company">Hexling Ltd</span>
  <span class="location">London, UK</span>
</article>
<article>
  <a href="/jobs/1003-mystery">Longest possible title padding ` + "`" + `x` + "`" + ` repeated far past the two hundred character guard so the anchor is treated as page chrome rather than a job title and silently skipped by the parser because nothing real is ever that long ok</a>
</article>
</body></html>`

func TestParseListings(t *testing.T) {
	listings, err := ParseListings(strings.NewReader(searchFixture))
	require.NoError(t, err)
	require.Len(t, listings, 2, "nav links, duplicates and absurd titles dropped")

	first := listings[0]
	assert.Equal(t, "Character Artist", first.Title)
	assert.Equal(t, "Nebula Interactive", first.Company)
	assert.Equal(t, "Remote", first.LocationRaw)
	assert.Equal(t, "Remote", first.RemoteType)
	assert.Equal(t, "https://hitmarker.net/jobs/1001-character-artist-nebula", first.URL)
	assert.True(t, strings.HasPrefix(first.ExternalID, "hitmarker_"))

	second := listings[1]
	assert.Equal(t, "Junior 3D Character Artist", second.Title)
	assert.Equal(t, "Hexling Ltd", second.Company)
	assert.Equal(t, "London, UK", second.LocationRaw)
}

func TestParseListingsMissingCompany(t *testing.T) {
	html := `
<html><body>
<div>
  <a href="/jobs/2001-character-artist">Character Artist</a>
</div>
</body></html>`

	listings, err := ParseListings(strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Unknown", listings[0].Company)
}
