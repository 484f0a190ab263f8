package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
)

func filterConfig(remoteOK bool, allow, block []string) config.Config {
	var cfg config.Config
	cfg.Filters.RemoteOK = remoteOK
	cfg.Filters.LocationsAllow = allow
	cfg.Filters.LocationsBlock = block
	return cfg
}

func TestShouldKeepListing(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		job        domain.JobListing
		wantKeep   bool
		wantReason string
	}{
		{
			name:       "missing url",
			cfg:        filterConfig(true, nil, nil),
			job:        domain.JobListing{Title: "Character Artist"},
			wantKeep:   false,
			wantReason: "missing_url",
		},
		{
			name:       "missing title",
			cfg:        filterConfig(true, nil, nil),
			job:        domain.JobListing{URL: "https://x.com/jobs/1"},
			wantKeep:   false,
			wantReason: "missing_title",
		},
		{
			name:     "no filters keeps everything",
			cfg:      filterConfig(true, nil, nil),
			job:      domain.JobListing{Title: "Character Artist", URL: "https://x.com/jobs/1", LocationRaw: "Oslo"},
			wantKeep: true,
		},
		{
			name:       "blocklist wins over allowlist",
			cfg:        filterConfig(true, []string{"usa"}, []string{"texas"}),
			job:        domain.JobListing{Title: "Character Artist", URL: "https://x.com/jobs/1", LocationRaw: "Austin, Texas, USA"},
			wantKeep:   false,
			wantReason: "location",
		},
		{
			name:     "remote allowed",
			cfg:      filterConfig(true, []string{"canada"}, nil),
			job:      domain.JobListing{Title: "Character Artist", URL: "https://x.com/jobs/1", RemoteType: "Remote"},
			wantKeep: true,
		},
		{
			name:       "remote rejected when remote_ok off",
			cfg:        filterConfig(false, nil, nil),
			job:        domain.JobListing{Title: "Character Artist (Remote)", URL: "https://x.com/jobs/1"},
			wantKeep:   false,
			wantReason: "location",
		},
		{
			name:       "allowlist miss",
			cfg:        filterConfig(true, []string{"canada"}, nil),
			job:        domain.JobListing{Title: "Character Artist", URL: "https://x.com/jobs/1", LocationRaw: "Berlin, Germany"},
			wantKeep:   false,
			wantReason: "location",
		},
		{
			name:     "allowlist hit",
			cfg:      filterConfig(true, []string{"canada"}, nil),
			job:      domain.JobListing{Title: "Character Artist", URL: "https://x.com/jobs/1", LocationRaw: "Montreal, Canada"},
			wantKeep: true,
		},
		{
			name:     "unknown location passes allowlist",
			cfg:      filterConfig(true, []string{"canada"}, nil),
			job:      domain.JobListing{Title: "Character Artist", URL: "https://x.com/jobs/1"},
			wantKeep: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, reason := ShouldKeepListing(tt.cfg, tt.job)
			assert.Equal(t, tt.wantKeep, keep)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
