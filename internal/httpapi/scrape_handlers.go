package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/scrape/types"
)

type ScrapeHandler struct {
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // types.ScrapeStatus

	ClaimRun      func() bool
	BuildFetchers func(cfg config.Config, only []string) ([]types.Fetcher, error)
	RunScrape     func(ctx context.Context, cfg config.Config, fetchers []types.Fetcher) (added int)
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := types.ScrapeStatus{}
	if cur := h.ScrapeStatus.Load(); cur != nil {
		st = cur.(types.ScrapeStatus)
	}
	writeJSON(w, st)
}

type scrapeRunReq struct {
	Platforms []string `json:"platforms"`
}

// Run kicks off a scrape pass in the background. A pass already in flight
// wins; overlapping browser sessions against the same boards only get the
// engine rate limited.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req scrapeRunReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	fetchers, err := h.BuildFetchers(cfg, req.Platforms)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "unknown_platform", err.Error())
		return
	}
	if len(fetchers) == 0 {
		WriteError(w, r, http.StatusBadRequest, "nothing_enabled", "no platforms enabled or requested")
		return
	}

	// Claim the Running flag before spawning; two requests racing here
	// must not both get a pass. RunScrape releases it when done.
	if !h.ClaimRun() {
		WriteError(w, r, http.StatusConflict, "already_running", "a scrape pass is already running")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		h.RunScrape(ctx, cfg, fetchers)
	}()

	names := make([]string, len(fetchers))
	for i, f := range fetchers {
		names[i] = f.Name()
	}
	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "platforms": names})
}
