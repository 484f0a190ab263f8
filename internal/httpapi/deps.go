package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/events"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/store"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores types.ScrapeStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	DeleteJob func(ctx context.Context, db *sql.DB, id int64) error

	// Scrape entrypoints (inject for testability). ClaimRun must flip
	// the Running flag atomically and report whether the caller won it;
	// RunScrape clears the flag when the pass ends.
	ClaimRun      func() bool
	BuildFetchers func(cfg config.Config, only []string) ([]types.Fetcher, error)
	RunScrape     func(ctx context.Context, cfg config.Config, fetchers []types.Fetcher) (added int)

	// Digest mailer (inject for testability)
	SendDigest func(cfg config.Config, to, message string, jobs []store.Job) error
}
