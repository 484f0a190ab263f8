package scrape

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/domain"
	"artjobs-engine/internal/scrape/artstation"
	emailsrc "artjobs-engine/internal/scrape/email"
	"artjobs-engine/internal/scrape/gamejobs"
	"artjobs-engine/internal/scrape/hitmarker"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/scrape/util"
	"artjobs-engine/internal/store"
)

// fetchTimeout is how long a plain-HTTP fetcher may take. Browser-driven
// fetchers get browserTimeout: Playwright startup plus scroll passes on a
// slow machine can eat most of a minute.
const (
	fetchTimeout   = 45 * time.Second
	browserTimeout = 3 * time.Minute
)

// Summary is what one RunOnce pass produced, per fetcher.
type Summary struct {
	Source string `json:"source"`
	Found  int    `json:"found"`
	Added  int    `json:"added"`
	Error  string `json:"error,omitempty"`
}

// BuildFetchers assembles the fetchers enabled in cfg. If only is non-empty
// it restricts the set to those names; an unknown name is an error so the
// API can reject bad requests instead of silently scraping nothing.
func BuildFetchers(cfg config.Config, only []string) ([]types.Fetcher, error) {
	limiter := util.NewHostLimiter(1.0, 2)

	all := map[string]func() types.Fetcher{
		"artstation": func() types.Fetcher {
			return artstation.New(artstation.Config{
				URL:          cfg.Platforms.ArtStation.URL,
				Headless:     cfg.Browser.Headless,
				Delay:        time.Duration(cfg.Browser.DelaySeconds) * time.Second,
				ScrollPasses: cfg.Browser.ScrollPasses,
			})
		},
		"gamejobs": func() types.Fetcher {
			return gamejobs.New(gamejobs.Config{SearchURL: cfg.Platforms.GameJobs.URL}, limiter)
		},
		"hitmarker": func() types.Fetcher {
			return hitmarker.New(hitmarker.Config{SearchURL: cfg.Platforms.Hitmarker.URL}, limiter)
		},
		"email": func() types.Fetcher {
			return &emailsrc.AlertFetcher{Cfg: cfg}
		},
	}
	enabled := map[string]bool{
		"artstation": cfg.Platforms.ArtStation.Enabled,
		"gamejobs":   cfg.Platforms.GameJobs.Enabled,
		"hitmarker":  cfg.Platforms.Hitmarker.Enabled,
		"email":      cfg.Email.Enabled,
	}

	var names []string
	if len(only) > 0 {
		for _, n := range only {
			n = strings.ToLower(strings.TrimSpace(n))
			if n == "" {
				continue
			}
			if _, ok := all[n]; !ok {
				return nil, fmt.Errorf("unknown platform %q", n)
			}
			names = append(names, n)
		}
	} else {
		for _, n := range []string{"artstation", "gamejobs", "hitmarker", "email"} {
			if enabled[n] {
				names = append(names, n)
			}
		}
	}

	var fetchers []types.Fetcher
	for _, n := range names {
		fetchers = append(fetchers, all[n]())
	}
	return fetchers, nil
}

// RunOnce fans the fetchers out concurrently, records a scrape_runs row per
// fetcher, and inserts whatever survives filtering and classification.
// Fetcher failures are recorded, not fatal: one broken board should not
// starve the others.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config,
	fetchers []types.Fetcher, onNewJob func(), notifyJob func(store.Job)) ([]Summary, error) {

	summaries := make([]Summary, len(fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetchers {
		i, f := i, f
		g.Go(func() error {
			summaries[i] = runFetcher(gctx, db, cfg, f, onNewJob, notifyJob)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summaries, err
	}
	return summaries, ctx.Err()
}

func runFetcher(ctx context.Context, db *sql.DB, cfg config.Config,
	f types.Fetcher, onNewJob func(), notifyJob func(store.Job)) Summary {

	timeout := fetchTimeout
	if f.Name() == "artstation" {
		timeout = browserTimeout
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sum := Summary{Source: f.Name()}

	runID, err := store.StartRun(ctx, db, f.Name(), f.Platform())
	if err != nil {
		log.Printf("[%s] start run: %v", f.Name(), err)
	}

	start := time.Now()
	res, err := f.Fetch(fctx)
	sum.Found = len(res.Listings)
	if err != nil {
		sum.Error = err.Error()
		log.Printf("[%s] fetch failed after %s: %v", f.Name(), time.Since(start).Round(time.Millisecond), err)
	} else {
		sum.Added = ProcessListings(ctx, db, cfg, res.Listings, onNewJob, notifyJob)
		log.Printf("[%s] found=%d added=%d took=%s",
			f.Name(), sum.Found, sum.Added, time.Since(start).Round(time.Millisecond))
	}

	if runID > 0 {
		status := domain.RunSuccess
		if err != nil {
			status = domain.RunError
		}
		if ferr := store.FinishRun(ctx, db, runID, status, sum.Found, sum.Added, sum.Error); ferr != nil {
			log.Printf("[%s] finish run: %v", f.Name(), ferr)
		}
	}

	return sum
}

// TotalAdded sums the per-fetcher counts.
func TotalAdded(sums []Summary) int {
	n := 0
	for _, s := range sums {
		n += s.Added
	}
	return n
}
