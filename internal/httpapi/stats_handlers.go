package httpapi

import (
	"database/sql"
	"net/http"

	"artjobs-engine/internal/store"
)

type StatsHandler struct {
	DB *sql.DB
}

func (h StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, st)
}

func (h StatsHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := store.ListPlatforms(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if platforms == nil {
		platforms = []string{}
	}
	writeJSON(w, map[string]any{"platforms": platforms})
}

type RunsHandler struct {
	DB *sql.DB
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns(r.Context(), h.DB, queryInt(r, "limit", 50))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if runs == nil {
		runs = []store.RunRow{}
	}
	writeJSON(w, runs)
}
