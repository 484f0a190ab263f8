package scrape

import (
	"strings"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
)

// ShouldKeepListing is the pre-insert gate: structural sanity first, then
// the location allow/block rules from config.
func ShouldKeepListing(cfg config.Config, j domain.JobListing) (keep bool, reason string) {
	if strings.TrimSpace(j.URL) == "" {
		return false, "missing_url"
	}
	if strings.TrimSpace(j.Title) == "" {
		return false, "missing_title"
	}
	if !passesLocation(cfg, j) {
		return false, "location"
	}
	return true, ""
}

func passesLocation(cfg config.Config, j domain.JobListing) bool {
	text := strings.ToLower(strings.TrimSpace(j.LocationRaw))
	title := strings.ToLower(strings.TrimSpace(j.Title))

	isRemote := j.RemoteType == "Remote" ||
		strings.Contains(text, "remote") || strings.Contains(title, "remote")

	// Blocklist wins
	for _, b := range cfg.Filters.LocationsBlock {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if strings.Contains(text, b) || strings.Contains(title, b) {
			return false
		}
	}

	if isRemote {
		return cfg.Filters.RemoteOK
	}

	// Allowlist: if empty, allow everything (besides blocklist)
	allow := cfg.Filters.LocationsAllow
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(text, a) || strings.Contains(title, a) {
			return true
		}
	}
	// unknown locations pass when nothing matched but nothing is known either
	return text == ""
}
