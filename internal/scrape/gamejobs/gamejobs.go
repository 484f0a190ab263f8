package gamejobs

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
	PlatformName = "GameJobs"
	baseURL      = "https://gamejobs.co"
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
		cfg.SearchURL = baseURL + "/search?q=3d+character+artist"
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string     { return "gamejobs" }
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
		return res, fmt.Errorf("gamejobs get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return res, fmt.Errorf("gamejobs status %d", resp.StatusCode)
	}

	listings, err := ParseListings(resp.Body)
	if err != nil {
		return res, err
	}
	log.Printf("[gamejobs] parsed %d listings", len(listings))

	res.Listings = listings
	return res, nil
}

// ParseListings extracts search results. Each result is an a.title anchor
// inside a div.job card that also carries company and location spans.
func ParseListings(r io.Reader) ([]domain.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("gamejobs parse html: %w", err)
	}

	links := doc.Find("a.title")
	if links.Length() == 0 {
		links = doc.Find(".job a")
	}

	now := time.Now().UTC()
	var out []domain.JobListing

	links.Each(func(_ int, link *goquery.Selection) {
		title := util.CleanText(link.Text())
		href, _ := link.Attr("href")
		u := util.AbsoluteURL(baseURL, href)
		if u == "" || title == "" {
			return
		}

		card := link.Closest("div.job")
		if card.Length() == 0 {
			card = link.Parent()
		}

		company := util.CleanText(card.Find("a.company, span.company").First().Text())
		if company == "" {
			company = "Unknown"
		}
		locRaw := util.CleanText(card.Find(".location").First().Text())

		remote := util.InferRemoteType(locRaw, title, "")
		location := util.NormalizeLocation(locRaw)
		if remote == "Remote" {
			location = "Remote"
		}

		out = append(out, domain.JobListing{
			Platform:    PlatformName,
			ExternalID:  util.ExternalID(PlatformName, u),
			Title:       title,
			Company:     company,
			LocationRaw: location,
			RemoteType:  remote,
			URL:         util.CanonicalURL(u),
			ScrapedAt:   now,
		})
	})

	return dedupe(out), nil
}

func dedupe(in []domain.JobListing) []domain.JobListing {
	seen := map[string]bool{}
	out := in[:0]
	for _, j := range in {
		if seen[j.ExternalID] {
			continue
		}
		seen[j.ExternalID] = true
		out = append(out, j)
	}
	return out
}
