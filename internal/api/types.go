// File path: internal/api/types.go
package api

import (
	"github.com/nicodishanthj/lqa-insight/internal/audit"
	"github.com/nicodishanthj/lqa-insight/internal/ingest"
	"github.com/nicodishanthj/lqa-insight/internal/session"
)

type uploadResponse struct {
	Added   []ingest.ReportFile `json:"added"`
	Skipped []string            `json:"skipped,omitempty"`
}

type statusResponse struct {
	Status    session.Status      `json:"status"`
	Files     []ingest.ReportFile `json:"files"`
	Error     string              `json:"error,omitempty"`
	ErrorKind audit.Kind          `json:"error_kind,omitempty"`
	HasReport bool                `json:"has_report"`
}

func statusResponseFrom(snap session.Snapshot) statusResponse {
	files := snap.Files
	if files == nil {
		files = []ingest.ReportFile{}
	}
	return statusResponse{
		Status:    snap.Status,
		Files:     files,
		Error:     snap.Error,
		ErrorKind: snap.ErrorKind,
		HasReport: snap.HasReport(),
	}
}
