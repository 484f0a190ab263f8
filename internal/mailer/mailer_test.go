package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/store"
)

func TestConfigured(t *testing.T) {
	var cfg config.Config
	assert.False(t, Configured(cfg))

	cfg.SMTP.Enabled = true
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.User = "me@example.com"
	assert.False(t, Configured(cfg), "from address still missing")

	cfg.SMTP.From = "me@example.com"
	assert.True(t, Configured(cfg))
}

func TestRenderDigest(t *testing.T) {
	jobs := []store.Job{
		{
			Title:             "Junior Character Artist",
			Company:           "Wildlight <Studio>",
			Location:          "Remote",
			RemoteType:        "Remote",
			URL:               "https://www.artstation.com/jobs/1",
			Platform:          "ArtStation",
			RelevanceScore:    9,
			IsEntryLevel:      true,
			IsCharacterArtist: true,
		},
		{
			Title:          "Senior Character Artist",
			Company:        "Ironforge",
			URL:            "https://hitmarker.net/jobs/2",
			Platform:       "Hitmarker",
			RelevanceScore: 6,
		},
	}

	html, err := RenderDigest(jobs, "")
	require.NoError(t, err)
	body := string(html)

	assert.Contains(t, body, "Junior Character Artist")
	assert.Contains(t, body, "https://www.artstation.com/jobs/1")
	assert.Contains(t, body, "relevance 9/10")
	assert.Contains(t, body, "entry level")
	assert.Contains(t, body, "Wildlight &lt;Studio&gt;", "company names are escaped")
	assert.Contains(t, body, "2 listings")
}

func TestRenderDigestMessage(t *testing.T) {
	jobs := []store.Job{{Title: "Character Artist", URL: "https://x/1", Platform: "ArtStation"}}

	html, err := RenderDigest(jobs, "Saved these for <you>")
	require.NoError(t, err)
	assert.Contains(t, string(html), "Saved these for &lt;you&gt;")

	html, err = RenderDigest(jobs, "")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "Saved these")
}

func TestSendDigestRequiresConfig(t *testing.T) {
	var cfg config.Config
	err := SendDigest(cfg, "", "", []store.Job{{Title: "x", URL: "https://x"}})
	assert.Error(t, err)
}

func TestSendDigestRequiresJobs(t *testing.T) {
	var cfg config.Config
	cfg.SMTP.Enabled = true
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.User = "me@example.com"
	cfg.SMTP.From = "me@example.com"
	err := SendDigest(cfg, "", "", nil)
	assert.Error(t, err)
}
