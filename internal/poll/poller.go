package poll

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/events"
	"artjobs-engine/internal/scheduler"
	"artjobs-engine/internal/scrape"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/store"
)

// NotifyFor resolves the per-job notifier for the config a pass runs under,
// so a telegram block enabled via PUT /api/config takes effect on the next
// pass without a restart. May return nil (notifications off).
type NotifyFor func(config.Config) func(store.Job)

// StartPoller runs scrape passes on the configured interval until ctx is
// cancelled. Config and status live in atomic.Values so the HTTP layer can
// read and hot-swap them without coordinating with this goroutine.
func StartPoller(ctx context.Context, db *sql.DB, cfgVal, scrapeStatus *atomic.Value,
	hub *events.Hub, notifyFor NotifyFor) {

	interval := func() time.Duration {
		if cfgAny := cfgVal.Load(); cfgAny != nil {
			if secs := cfgAny.(config.Config).Polling.IntervalSeconds; secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
		return 30 * time.Minute
	}

	go scheduler.Every(ctx, interval, "poll", func(tctx context.Context) error {
		cfgAny := cfgVal.Load()
		if cfgAny == nil {
			return nil
		}
		cfg := cfgAny.(config.Config)

		fetchers, err := scrape.BuildFetchers(cfg, nil)
		if err != nil {
			return err
		}
		if len(fetchers) == 0 {
			return nil
		}

		if !ClaimRun(scrapeStatus) {
			log.Printf("[poll] pass already running, skipping cycle")
			return nil
		}
		runPass(tctx, db, cfg, fetchers, scrapeStatus, hub, notifyFor)
		return nil
	})
}

// statusMu serializes every read-modify-write of the shared scrape status;
// atomic.Value alone cannot make the Running check-and-set atomic.
var statusMu sync.Mutex

// ClaimRun flips Running on the shared status, or reports false when a pass
// already holds it. Whoever claims must follow through with RunPass, which
// clears the flag when the pass ends. Both the poller and the manual
// trigger claim through here, so a pass in flight always wins the race.
func ClaimRun(v *atomic.Value) bool {
	statusMu.Lock()
	defer statusMu.Unlock()

	st := types.ScrapeStatus{}
	if cur := v.Load(); cur != nil {
		st = cur.(types.ScrapeStatus)
	}
	if st.Running {
		return false
	}
	st.Running = true
	st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	v.Store(st)
	return true
}

// RunPass is the shared "one scrape cycle" used by both the poller and the
// manual trigger endpoint: it fans out the fetchers and publishes SSE
// events as jobs land. The caller must hold the Running flag (ClaimRun);
// RunPass releases it on the way out.
func RunPass(ctx context.Context, db *sql.DB, cfg config.Config,
	fetchers []types.Fetcher, scrapeStatus *atomic.Value,
	hub *events.Hub, notifyFor NotifyFor) (added int) {
	return runPass(ctx, db, cfg, fetchers, scrapeStatus, hub, notifyFor)
}

func runPass(ctx context.Context, db *sql.DB, cfg config.Config,
	fetchers []types.Fetcher, scrapeStatus *atomic.Value,
	hub *events.Hub, notifyFor NotifyFor) (added int) {

	var notifyJob func(store.Job)
	if notifyFor != nil {
		notifyJob = notifyFor(cfg)
	}

	onNewJob := func() {
		if hub != nil {
			hub.Publish(events.Marshal("", "job_created", 1, nil))
		}
	}

	sums, err := scrape.RunOnce(ctx, db, cfg, fetchers, onNewJob, notifyJob)
	added = scrape.TotalAdded(sums)

	lastErr := ""
	if err != nil {
		lastErr = err.Error()
	}
	for _, s := range sums {
		if s.Error != "" {
			lastErr = s.Source + ": " + s.Error
		}
	}

	setStatus(scrapeStatus, func(st *types.ScrapeStatus) {
		st.Running = false
		st.LastAdded = added
		st.LastError = lastErr
		if lastErr == "" {
			st.LastOkAt = time.Now().UTC().Format(time.RFC3339)
		}
	})

	if hub != nil {
		hub.Publish(events.Marshal("", "scrape_finished", 1, map[string]any{
			"added": added,
			"error": lastErr,
		}))
	}

	if lastErr != "" {
		log.Printf("[poll] done added=%d last_error=%q", added, lastErr)
	} else {
		log.Printf("[poll] ok added=%d", added)
	}
	return added
}

func setStatus(v *atomic.Value, mut func(*types.ScrapeStatus)) {
	statusMu.Lock()
	defer statusMu.Unlock()

	st := types.ScrapeStatus{}
	if cur := v.Load(); cur != nil {
		st = cur.(types.ScrapeStatus)
	}
	mut(&st)
	v.Store(st)
}
