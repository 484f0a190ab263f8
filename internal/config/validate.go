package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned-up copy plus everything a careful
// user should hear about before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.LocationsAllow = trimList(out.Filters.LocationsAllow)
	out.Filters.LocationsBlock = trimList(out.Filters.LocationsBlock)
	out.Classify.CharacterKeywords = trimList(out.Classify.CharacterKeywords)
	out.Classify.RelatedKeywords = trimList(out.Classify.RelatedKeywords)
	out.Classify.EntryKeywords = trimList(out.Classify.EntryKeywords)
	out.Classify.SeniorKeywords = trimList(out.Classify.SeniorKeywords)
	out.Classify.OutsourcingCos = trimList(out.Classify.OutsourcingCos)
	out.Email.SearchSubjectAny = trimList(out.Email.SearchSubjectAny)

	if out.Polling.IntervalSeconds <= 0 {
		res.addErr("polling.interval_seconds must be > 0")
	} else if out.Polling.IntervalSeconds < 60 {
		res.addWarn("polling.interval_seconds is very low (%d); job boards may rate-limit or block you.", out.Polling.IntervalSeconds)
	}

	if !out.Platforms.ArtStation.Enabled && !out.Platforms.GameJobs.Enabled &&
		!out.Platforms.Hitmarker.Enabled && !out.Email.Enabled {
		res.addWarn("no platforms enabled; scrape runs will do nothing.")
	}

	if len(out.Classify.CharacterKeywords) == 0 {
		res.addWarn("classify.character_keywords is empty; nothing will be flagged as a character-artist role.")
	}
	if !out.Filters.RemoteOK && len(out.Filters.LocationsAllow) == 0 {
		res.addWarn("remote_ok is false and locations_allow is empty; you may filter out almost everything.")
	}

	if out.Browser.ScrollPasses <= 0 {
		out.Browser.ScrollPasses = 3
	}
	if out.Browser.DelaySeconds <= 0 {
		out.Browser.DelaySeconds = 2
	}

	blockSet := map[string]bool{}
	for _, b := range out.Filters.LocationsBlock {
		blockSet[strings.ToLower(b)] = true
	}
	for _, a := range out.Filters.LocationsAllow {
		if blockSet[strings.ToLower(a)] {
			res.addWarn("location appears in both allow and block: %q", a)
		}
	}

	return out, res
}
