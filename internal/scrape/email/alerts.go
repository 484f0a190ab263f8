package email

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/emersion/go-imap/v2"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/scrape/util"
	"artjobs-engine/internal/secrets"
)

const PlatformName = "Email"

// AlertFetcher ingests job-alert emails (ArtStation and similar boards mail
// new matches) and turns their listing links into normalized records.
type AlertFetcher struct {
	Cfg config.Config
}

func (f *AlertFetcher) Name() string     { return "email" }
func (f *AlertFetcher) Platform() string { return PlatformName }

func (f *AlertFetcher) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: PlatformName}

	password, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(f.Cfg))
	if err != nil {
		return res, err
	}

	addr := fmt.Sprintf("%s:%d", f.Cfg.Email.IMAPHost, f.Cfg.Email.IMAPPort)
	c, err := DialAndLogin(ctx, addr, f.Cfg.Email.Username, password)
	if err != nil {
		return res, err
	}
	defer LogoutAndClose(c)

	if err := SelectMailbox(c, f.Cfg.Email.Mailbox); err != nil {
		return res, err
	}

	msgs, err := FetchUnseen(ctx, c, f.Cfg.Email.MaxMessages)
	if err != nil {
		return res, err
	}

	var processed []imap.UID
	for _, m := range msgs {
		if !subjectMatches(m.Subject, f.Cfg.Email.SearchSubjectAny) {
			continue
		}
		body := htmlBody(m.RawMessage)
		if body == "" {
			continue
		}
		listings := ParseAlertHTML(body, m.Date)
		if len(listings) == 0 {
			continue
		}
		res.Listings = append(res.Listings, listings...)
		processed = append(processed, m.UID)
	}

	if err := MarkSeen(c, processed); err != nil {
		log.Printf("[email] mark seen: %v", err)
	}

	log.Printf("[email] messages=%d matched=%d listings=%d",
		len(msgs), len(processed), len(res.Listings))
	return res, nil
}

// ParseAlertHTML pulls job links out of an alert email body. Anchors whose
// href points at a known board's job page become listings; the anchor text
// is the best available title.
func ParseAlertHTML(body string, sentAt time.Time) []domain.JobListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	now := time.Now().UTC()
	if sentAt.IsZero() {
		sentAt = now
	}

	seen := map[string]bool{}
	var out []domain.JobListing

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u := util.CanonicalURL(href)
		if !looksLikeJobURL(u) || seen[u] {
			return
		}

		title := util.CleanText(a.Text())
		if len(title) < 5 || len(title) > 200 {
			return
		}
		seen[u] = true

		// Stamp the board's platform, not "Email", so a job the direct
		// scrape also finds collapses onto the same (platform, external_id).
		platform := boardPlatform(u)

		posted := sentAt
		out = append(out, domain.JobListing{
			Platform:    platform,
			ExternalID:  util.ExternalID(platform, u),
			Title:       title,
			Company:     "Unknown",
			URL:         u,
			PostedAt:    &posted,
			ScrapedAt:   now,
			RemoteType:  util.InferRemoteType("", title, ""),
			LocationRaw: "",
		})
	})

	return out
}

func boardPlatform(u string) string {
	lu := strings.ToLower(u)
	switch {
	case strings.Contains(lu, "artstation.com"):
		return "ArtStation"
	case strings.Contains(lu, "hitmarker.net"):
		return "Hitmarker"
	case strings.Contains(lu, "gamejobs.co"):
		return "GameJobs"
	default:
		return PlatformName
	}
}

func looksLikeJobURL(u string) bool {
	lu := strings.ToLower(u)
	if !strings.HasPrefix(lu, "http") {
		return false
	}
	return strings.Contains(lu, "/jobs/") &&
		(strings.Contains(lu, "artstation.com") ||
			strings.Contains(lu, "hitmarker.net") ||
			strings.Contains(lu, "gamejobs.co"))
}

func subjectMatches(subject string, any []string) bool {
	if len(any) == 0 {
		return true
	}
	s := strings.ToLower(subject)
	for _, needle := range any {
		n := strings.ToLower(strings.TrimSpace(needle))
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
