package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/events"
	"artjobs-engine/internal/httpapi"
	"artjobs-engine/internal/mailer"
	"artjobs-engine/internal/notify"
	"artjobs-engine/internal/poll"
	"artjobs-engine/internal/scrape"
	"artjobs-engine/internal/scrape/types"
	"artjobs-engine/internal/store"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine: background poller plus the local REST API",
	RunE:  runServe,
}

var servePort int

func init() {
	serveCommand.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
	rootCmd.AddCommand(serveCommand)
}

func dataDir() string {
	if d := os.Getenv("ARTJOBS_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// One engine per data dir. A second instance fighting over the sqlite
	// file and the poll schedule only produces duplicate runs.
	lock := flock.New(filepath.Join(dir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine instance is already running in %s", dir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dir, "artjobs.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return err
	}

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(types.ScrapeStatus{})

	// Telegram is resolved per pass from the live config, so toggling it
	// through the API does not need a restart.
	var notifier notify.Dispatcher

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poll.StartPoller(ctx, db.Pool, &cfgVal, &scrapeStatus, hub, notifier.For)

	mux := httpapi.NewMux(httpapi.Deps{
		DB:            db.Pool,
		Hub:           hub,
		CfgVal:        &cfgVal,
		ScrapeStatus:  &scrapeStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		DeleteJob:     store.DeleteJob,
		ClaimRun:      func() bool { return poll.ClaimRun(&scrapeStatus) },
		BuildFetchers: scrape.BuildFetchers,
		RunScrape: func(rctx context.Context, rcfg config.Config, fetchers []types.Fetcher) int {
			return poll.RunPass(rctx, db.Pool, rcfg, fetchers, &scrapeStatus, hub, notifier.For)
		},
		SendDigest: mailer.SendDigest,
	})

	port := servePort
	if port == 0 {
		port = cfg.App.Port
	}
	if port == 0 {
		port = 38471
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dir)

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Cors,
			httpapi.Recover,
			httpapi.AccessLog,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
