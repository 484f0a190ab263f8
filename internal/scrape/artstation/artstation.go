package artstation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"artjobs-engine/internal/browser"
	"artjobs-engine/internal/domain"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/scrape/util"
)

const (
	PlatformName = "ArtStation"
	baseURL      = "https://www.artstation.com"
)

type Config struct {
	URL          string
	Headless     bool
	Delay        time.Duration
	ScrollPasses int
}

// Scraper drives a headless browser because the ArtStation jobs board is
// rendered entirely client-side; plain HTTP returns an empty shell.
type Scraper struct {
	cfg Config
}

func New(cfg Config) *Scraper {
	if cfg.URL == "" {
		cfg.URL = baseURL + "/jobs"
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 2 * time.Second
	}
	if cfg.ScrollPasses <= 0 {
		cfg.ScrollPasses = 3
	}
	return &Scraper{cfg: cfg}
}

func (s *Scraper) Name() string     { return "artstation" }
func (s *Scraper) Platform() string { return PlatformName }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: PlatformName}

	mgr, err := browser.New(s.cfg.Headless)
	if err != nil {
		return res, fmt.Errorf("artstation browser: %w", err)
	}
	defer mgr.Close()

	page, err := mgr.NewPage()
	if err != nil {
		return res, fmt.Errorf("artstation page: %w", err)
	}

	if err := browser.Navigate(page, s.cfg.URL, s.cfg.Delay); err != nil {
		return res, err
	}
	browser.ScrollPage(page, s.cfg.ScrollPasses, s.cfg.Delay)

	html, err := page.Content()
	if err != nil {
		return res, fmt.Errorf("artstation content: %w", err)
	}

	listings, err := ParseListings(html)
	if err != nil {
		return res, err
	}
	log.Printf("[artstation] parsed %d listings", len(listings))

	res.Listings = listings
	return res, nil
}

// ParseListings extracts job cards from rendered board HTML. Split out from
// Fetch so it can run against static fixtures.
func ParseListings(html string) ([]domain.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("artstation parse html: %w", err)
	}

	cards := doc.Find(".job-grid-item")
	if cards.Length() == 0 {
		// board markup shifts occasionally; fall back to looser selectors
		cards = doc.Find(`[class*="job-grid"]`)
	}
	if cards.Length() == 0 {
		cards = doc.Find("article")
	}

	now := time.Now().UTC()
	var out []domain.JobListing

	cards.Each(func(_ int, card *goquery.Selection) {
		title := firstText(card,
			".job-grid-item-title-holder", "h2", "h3", `[class*="title"]`)
		company := firstText(card,
			".job-grid-item-company", `[class*="company"]`)
		info := util.CleanText(card.Find(".job-grid-item-info").First().Text())

		href, _ := card.Find(`a[href*="/jobs/"]`).First().Attr("href")
		u := util.AbsoluteURL(baseURL, href)

		if u == "" || title == "" || company == "" {
			return
		}

		out = append(out, domain.JobListing{
			Platform:    PlatformName,
			ExternalID:  util.ExternalID(PlatformName, u),
			Title:       title,
			Company:     company,
			LocationRaw: util.NormalizeLocation(info),
			RemoteType:  util.InferRemoteType(info, title, ""),
			URL:         util.CanonicalURL(u),
			ScrapedAt:   now,
		})
	})

	return out, nil
}

func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := util.CleanText(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}
