package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync/atomic"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/mailer"
	"artjobs-engine/internal/store"
)

type EmailHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value // config.Config

	SendDigest func(cfg config.Config, to, message string, jobs []store.Job) error
}

type emailSendReq struct {
	ToEmail string  `json:"to_email"`
	JobIDs  []int64 `json:"job_ids"`
	Message string  `json:"message"`
}

// Send mails a digest of the selected jobs. The SMTP round trip happens in
// the background; the response only confirms the digest was assembled.
func (h EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	if !mailer.Configured(cfg) {
		WriteError(w, r, http.StatusServiceUnavailable, "smtp_unconfigured", "email service not configured")
		return
	}

	var req emailSendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	if len(req.JobIDs) == 0 {
		WriteError(w, r, http.StatusBadRequest, "no_jobs_selected", "no jobs selected")
		return
	}

	jobs, err := store.GetJobsByIDs(r.Context(), h.DB, req.JobIDs)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if len(jobs) == 0 {
		WriteError(w, r, http.StatusNotFound, "no_jobs", "no jobs found")
		return
	}

	go func() {
		if err := h.SendDigest(cfg, req.ToEmail, req.Message, jobs); err != nil {
			log.Printf("[mailer] digest send failed: %v", err)
		} else {
			log.Printf("[mailer] digest sent jobs=%d", len(jobs))
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "jobs": len(jobs)})
}
