package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.Polling.IntervalSeconds = 3600
	cfg.Platforms.ArtStation.Enabled = true
	cfg.Filters.RemoteOK = true
	cfg.Classify.CharacterKeywords = []string{"character artist"}
	return cfg
}

func TestNormalizeAndValidateOK(t *testing.T) {
	out, vr := NormalizeAndValidate(validConfig())
	assert.True(t, vr.OK())
	assert.Empty(t, vr.Warnings)
	assert.Equal(t, 3, out.Browser.ScrollPasses, "browser defaults applied")
	assert.Equal(t, 2, out.Browser.DelaySeconds)
}

func TestNormalizeAndValidateErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Polling.IntervalSeconds = 0

	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	require.Len(t, vr.Errors, 1)
	assert.Contains(t, vr.Errors[0], "polling.interval_seconds")
}

func TestNormalizeAndValidateWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Polling.IntervalSeconds = 10
	cfg.Platforms.ArtStation.Enabled = false
	cfg.Classify.CharacterKeywords = nil
	cfg.Filters.RemoteOK = false
	cfg.Filters.LocationsAllow = []string{"Canada"}
	cfg.Filters.LocationsBlock = []string{"canada"}

	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), "warnings alone do not block a save")
	assert.Len(t, vr.Warnings, 4)
}

func TestNormalizeAndValidateTrimsLists(t *testing.T) {
	cfg := validConfig()
	cfg.Classify.CharacterKeywords = []string{" character artist ", "", "Character Artist", "rigger"}

	out, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
	assert.Equal(t, []string{"character artist", "rigger"}, out.Classify.CharacterKeywords)
}
