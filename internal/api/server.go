// File path: internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/nicodishanthj/lqa-insight/internal/audit"
	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/prompt"
	"github.com/nicodishanthj/lqa-insight/internal/session"
)

// Auditor runs one audit round trip.
type Auditor interface {
	Audit(ctx context.Context, sources []prompt.Source, loc locale.Locale) audit.Result
}

type Server struct {
	router    chi.Router
	session   *session.Session
	auditor   Auditor
	cfg       Config
	templates map[string]*template.Template

	// baseCtx outlives requests; background audits stop when it ends.
	baseCtx context.Context
	audits  sync.WaitGroup
	now     func() time.Time
}

// Config controls request handling.
type Config struct {
	DefaultLocale locale.Locale
	UploadMemory  int64
}

// DefaultConfig returns the standard configuration used when no overrides are
// provided.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: locale.Default,
		UploadMemory:  32 << 20,
	}
}

// Merge overlays non-zero fields from override onto c.
func (c Config) Merge(override Config) Config {
	result := c
	if override.DefaultLocale.Valid() {
		result.DefaultLocale = override.DefaultLocale
	}
	if override.UploadMemory > 0 {
		result.UploadMemory = override.UploadMemory
	}
	return result
}

func NewServer(ctx context.Context, sess *session.Session, auditor Auditor, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if sess == nil {
		return nil, fmt.Errorf("session required")
	}
	if auditor == nil {
		return nil, fmt.Errorf("auditor required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	srv := &Server{
		router:    chi.NewRouter(),
		session:   sess,
		auditor:   auditor,
		cfg:       configuration,
		templates: tmpl,
		baseCtx:   ctx,
		now:       time.Now,
	}
	srv.routes()
	logger.Info("api: server ready", "default_locale", configuration.DefaultLocale.String())
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Wait blocks until every background audit has finished.
func (s *Server) Wait() {
	s.audits.Wait()
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})
	s.router.Use(s.localeMiddleware)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("/debug/vars", expvar.Handler())

	s.router.Get("/", s.handleIndex)
	s.router.Get("/report", s.handleReport)
	s.router.Post("/files", s.handleUpload)
	s.router.Post("/files/clear", s.handleClearFiles)
	s.router.Post("/files/{id}/delete", s.handleRemoveFile)
	s.router.Post("/audit", s.handleAudit)
	s.router.Post("/reset", s.handleReset)
	s.router.Get("/export.xlsx", s.handleExport)
	s.router.Post("/locale", s.handleLocale)

	s.router.Get("/v1/status", s.handleStatus)
	s.router.Get("/v1/report", s.handleReportJSON)
	s.router.Get("/v1/logs", s.handleLogs)
}

// wantsJSON reports whether the caller asked for a JSON answer instead of a
// page redirect.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// done answers a form action: JSON callers get payload, browsers are sent
// back to target.
func done(w http.ResponseWriter, r *http.Request, status int, payload interface{}, target string) {
	if wantsJSON(r) {
		writeJSON(w, status, payload)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
