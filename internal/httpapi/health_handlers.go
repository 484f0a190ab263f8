package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/mailer"
)

type HealthHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value // config.Config
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	var jobCount int
	dbOK := true
	if err := h.DB.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM jobs;`).Scan(&jobCount); err != nil {
		dbOK = false
	}

	emailOK := false
	if cfgAny := h.CfgVal.Load(); cfgAny != nil {
		emailOK = mailer.Configured(cfgAny.(config.Config))
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, map[string]any{
		"ok":               dbOK,
		"jobs":             jobCount,
		"email_configured": emailOK,
	})
}
