// File path: internal/api/audit_handler.go
package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/export"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/prompt"
	"github.com/nicodishanthj/lqa-insight/internal/session"
)

// handleAudit starts the audit in the background so the progress page can be
// shown while the provider call is in flight.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	run, started, err := s.session.Begin()
	if errors.Is(err, session.ErrBusy) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !started {
		logger.Debug("api: audit requested without files")
		done(w, r, http.StatusOK, statusResponseFrom(s.session.Snapshot()), "/")
		return
	}

	loc := locale.FromContext(r.Context())
	sources := make([]prompt.Source, 0, len(run.Files))
	for _, f := range run.Files {
		sources = append(sources, prompt.Source{Name: f.Name, Content: f.Content})
	}
	s.audits.Add(1)
	go func() {
		defer s.audits.Done()
		res := s.auditor.Audit(s.baseCtx, sources, loc)
		if err := s.session.Finish(run, res); err != nil {
			logger.Warn("api: audit result discarded", "run", run.ID, "error", err)
		}
	}()
	logger.Info("api: audit started", "run", run.ID, "files", len(sources), "locale", loc.String())
	done(w, r, http.StatusAccepted, statusResponseFrom(s.session.Snapshot()), "/")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	done(w, r, http.StatusOK, statusResponseFrom(s.session.Snapshot()), "/")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponseFrom(s.session.Snapshot()))
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if !snap.HasReport() {
		writeError(w, http.StatusNotFound, export.ErrNoReport)
		return
	}
	writeJSON(w, http.StatusOK, snap.Report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if !snap.HasReport() {
		writeError(w, http.StatusNotFound, export.ErrNoReport)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, snap.Report, locale.FromContext(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("export report: %w", err))
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(s.now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	entries := common.LogEntries(limit)
	if entries == nil {
		entries = []common.LogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
