package hitmarker

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"artjobs-engine/internal/domain"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/scrape/util"
)

const (
	PlatformName = "Hitmarker"
	baseURL      = "https://hitmarker.net"
)

type Config struct {
	SearchURL string
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	if cfg.SearchURL == "" {
		cfg.SearchURL = baseURL + "/jobs?keyword=character"
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string     { return "hitmarker" }
func (s *Scraper) Platform() string { return PlatformName }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: PlatformName}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.SearchURL, nil)
	req.Header.Set("User-Agent", "ArtJobs/1.0 (+local)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, s.cfg.SearchURL); err != nil {
			return res, err
		}
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return res, fmt.Errorf("hitmarker get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return res, fmt.Errorf("hitmarker status %d", resp.StatusCode)
	}

	listings, err := ParseListings(resp.Body)
	if err != nil {
		return res, err
	}
	log.Printf("[hitmarker] parsed %d listings", len(listings))

	res.Listings = listings
	return res, nil
}

// ParseListings walks every /jobs/ anchor on the page. Hitmarker repeats
// the same link for card and title, so dedupe by URL, and anchors shorter
// than a plausible title are navigation chrome.
func ParseListings(r io.Reader) ([]domain.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("hitmarker parse html: %w", err)
	}

	now := time.Now().UTC()
	seen := map[string]bool{}
	var out []domain.JobListing

	doc.Find(`a[href*="/jobs/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u := util.AbsoluteURL(baseURL, href)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true

		title := util.CleanText(a.Text())
		if len(title) < 5 || len(title) > 200 {
			return
		}

		card := a.Closest("article")
		if card.Length() == 0 {
			card = a.Parent()
		}

		company := util.CleanText(card.Find(".company").First().Text())
		if company == "" {
			company = "Unknown"
		}
		location := util.NormalizeLocation(card.Find(".location").First().Text())

		out = append(out, domain.JobListing{
			Platform:    PlatformName,
			ExternalID:  util.ExternalID(PlatformName, u),
			Title:       title,
			Company:     company,
			LocationRaw: location,
			RemoteType:  util.InferRemoteType(location, title, ""),
			URL:         util.CanonicalURL(u),
			ScrapedAt:   now,
		})
	})

	return out, nil
}
