package util

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var jobIDRe = regexp.MustCompile(`/jobs/(\d+)`)

// ExternalID builds the per-platform dedup key. Platforms that embed a
// numeric id in the job URL (/jobs/12345) keep it; everything else falls
// back to a stable hash of the canonical URL.
func ExternalID(platform, rawURL string) string {
	prefix := strings.ToLower(strings.TrimSpace(platform))
	u := CanonicalURL(rawURL)

	if m := jobIDRe.FindStringSubmatch(u); m != nil {
		return prefix + "_" + m[1]
	}
	return prefix + "_" + HashString(u)[:12]
}

// HashString returns the hex sha256 of the lowercased, trimmed input.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:])
}
