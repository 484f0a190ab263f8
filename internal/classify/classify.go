package classify

import (
	"strings"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
)

// Result is everything classification decides about one listing.
type Result struct {
	IsCharacterArtist bool
	IsEntryLevel      bool
	Relevance         int // 0..10
	Tags              []string
}

// Classifier applies the keyword rules from config to normalized listings.
type Classifier struct {
	Cfg config.Config
}

func (c Classifier) Classify(j domain.JobListing) Result {
	title := strings.ToLower(j.Title)
	blob := strings.ToLower(j.Title + " " + j.Description + " " + j.LocationRaw)

	var res Result
	res.IsCharacterArtist = containsAny(title, c.Cfg.Classify.CharacterKeywords) ||
		containsAny(title, c.Cfg.Classify.RelatedKeywords)
	res.IsEntryLevel = c.isEntryLevel(blob)
	res.Relevance = c.relevance(res.IsCharacterArtist, res.IsEntryLevel, j.Company)
	res.Tags = c.tags(blob)
	return res
}

// isEntryLevel: a senior keyword hit vetoes, even when an entry keyword is
// also present. A listing with no seniority signal at all counts as entry
// level, since boards often omit the level on junior roles.
func (c Classifier) isEntryLevel(blob string) bool {
	return !containsAny(blob, c.Cfg.Classify.SeniorKeywords)
}

func (c Classifier) relevance(isCharacter, isEntry bool, company string) int {
	score := 0
	if isCharacter {
		score += c.Cfg.Classify.CharacterWeight
	}
	if isEntry {
		score += c.Cfg.Classify.EntryWeight
	}
	if containsAny(strings.ToLower(company), c.Cfg.Classify.OutsourcingCos) {
		score += c.Cfg.Classify.OutsourcingBonus
	}
	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (c Classifier) tags(blob string) []string {
	var tags []string
	for _, r := range c.Cfg.Classify.TitleRules {
		for _, needle := range r.Any {
			n := strings.ToLower(strings.TrimSpace(needle))
			if n == "" {
				continue
			}
			if strings.Contains(blob, n) {
				tags = append(tags, r.Tag)
				break
			}
		}
	}
	return uniq(tags)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
