// File path: internal/api/pages.go
package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/dashboard"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageUpload    = "upload"
	pageProgress  = "progress"
	pageDashboard = "dashboard"

	progressRefreshSeconds = 2
)

var pageNames = []string{pageUpload, pageProgress, pageDashboard}

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = page
	}
	return out, nil
}

type pageData struct {
	Loc      locale.Locale
	Locales  []locale.Locale
	Snapshot session.Snapshot
	CanAudit bool
	Refresh  int
	Status   string
	View     dashboard.View
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	loc := locale.FromContext(r.Context())
	data := pageData{Loc: loc, Locales: locale.Supported(), Snapshot: snap}
	switch snap.Status {
	case session.StatusParsing, session.StatusAuditing:
		data.Refresh = progressRefreshSeconds
		data.Status = loc.T("status_" + string(snap.Status))
		s.render(w, pageProgress, data)
	case session.StatusComplete:
		data.View = dashboard.Build(snap.Report, dashboard.TabOverview, loc)
		s.render(w, pageDashboard, data)
	default:
		data.CanAudit = len(snap.Files) > 0
		s.render(w, pageUpload, data)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if !snap.HasReport() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	loc := locale.FromContext(r.Context())
	tab := dashboard.ParseTab(r.URL.Query().Get("tab"))
	s.render(w, pageDashboard, pageData{
		Loc:      loc,
		Locales:  locale.Supported(),
		Snapshot: snap,
		View:     dashboard.Build(snap.Report, tab, loc),
	})
}

func (s *Server) render(w http.ResponseWriter, page string, data pageData) {
	tmpl, ok := s.templates[page]
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("unknown page %q", page))
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		common.Logger().Error("api: render failed", "page", page, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Errorf("render %s: %w", page, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
