package httpapi

import "net/http"

// NewMux wires every handler; main() wraps the result in the middleware
// chain and owns the http.Server lifecycle.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, DeleteJob: d.DeleteJob}
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/api/jobs/top", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Top,
	}))
	mux.HandleFunc("/api/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    jh.GetByPath,    // /api/jobs/{id}
		http.MethodDelete: jh.DeleteByPath, // /api/jobs/{id}
	}))

	// Stats
	sth := StatsHandler{DB: d.DB}
	mux.HandleFunc("/api/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.Stats,
	}))
	mux.HandleFunc("/api/platforms", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.Platforms,
	}))

	// Scrape runs history
	rh := RunsHandler{DB: d.DB}
	mux.HandleFunc("/api/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/api/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/api/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetIMAPPassword,
		http.MethodDelete: sh.DeleteIMAPPassword,
	}))
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetSMTPPassword,
		http.MethodDelete: sh.DeleteSMTPPassword,
	}))

	// Scrape
	sch := ScrapeHandler{
		CfgVal:        d.CfgVal,
		ScrapeStatus:  d.ScrapeStatus,
		ClaimRun:      d.ClaimRun,
		BuildFetchers: d.BuildFetchers,
		RunScrape:     d.RunScrape,
	}
	mux.HandleFunc("/api/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/api/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// Email digest
	eh := EmailHandler{DB: d.DB, CfgVal: d.CfgVal, SendDigest: d.SendDigest}
	mux.HandleFunc("/api/email/send", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: eh.Send,
	}))

	// SSE events
	evh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/api/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: evh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{DB: d.DB, CfgVal: d.CfgVal}
	mux.HandleFunc("/api/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
