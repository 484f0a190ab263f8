package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"artjobs-engine/internal/events"
	"artjobs-engine/internal/store"
)

type JobsHandler struct {
	DB        *sql.DB
	Hub       *events.Hub
	DeleteJob func(ctx context.Context, db *sql.DB, id int64) error
}

type jobsPage struct {
	Jobs   []store.Job `json:"jobs"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := store.ListJobsOpts{
		Platform:      r.URL.Query().Get("platform"),
		CharacterOnly: queryBool(r, "character_only"),
		EntryOnly:     queryBool(r, "entry_only"),
		MinRelevance:  queryInt(r, "min_relevance", -1),
		Limit:         queryInt(r, "limit", 50),
		Offset:        queryInt(r, "offset", 0),
	}

	jobs, total, err := store.ListJobs(r.Context(), h.DB, opts)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []store.Job{}
	}
	writeJSON(w, jobsPage{Jobs: jobs, Total: total, Limit: opts.Limit, Offset: opts.Offset})
}

func (h JobsHandler) Top(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.TopJobs(r.Context(), h.DB, queryInt(r, "limit", 20), queryBool(r, "entry_only"))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []store.Job{}
	}
	writeJSON(w, jobs)
}

// GetByPath handles GET /api/jobs/{id}; DeleteByPath handles the DELETE.
func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}
	job, err := store.GetJob(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "job not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, job)
}

func (h JobsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}
	if err := h.DeleteJob(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Marshal(reqID, "job_deleted", 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func idFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid job id")
		return 0, false
	}
	return id, true
}
