// File path: internal/session/session.go
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/nicodishanthj/lqa-insight/internal/audit"
	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/ingest"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

// Status is the stage of the single audit workflow.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusParsing  Status = "parsing"
	StatusAuditing Status = "auditing"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

var (
	// ErrBusy rejects an audit while another is in flight or a report is shown.
	ErrBusy = errors.New("an audit is already running or a report is open")
	// ErrNotAuditing rejects a result that arrives outside the auditing stage
	// or for a run that was reset in the meantime.
	ErrNotAuditing = errors.New("no audit in progress")
)

// Run identifies one audit started by Begin and carries the files it sends.
type Run struct {
	ID    uint64
	Files []ingest.ReportFile
}

// Snapshot is a copy of the session state. Files carry their content; the
// report pointer is shared and must be treated as read-only.
type Snapshot struct {
	Status      Status              `json:"status"`
	Files       []ingest.ReportFile `json:"files"`
	Report      *report.AuditReport `json:"-"`
	Error       string              `json:"error,omitempty"`
	ErrorKind   audit.Kind          `json:"error_kind,omitempty"`
	StartedAt   time.Time           `json:"started_at,omitzero"`
	CompletedAt time.Time           `json:"completed_at,omitzero"`
}

func (s Snapshot) HasReport() bool {
	return s.Status == StatusComplete && s.Report != nil
}

// Busy reports whether the audit action is unavailable.
func (s Snapshot) Busy() bool {
	switch s.Status {
	case StatusParsing, StatusAuditing, StatusComplete:
		return true
	}
	return false
}

// Session holds the one operator workflow. It is safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	status      Status
	files       ingest.Collection
	report      *report.AuditReport
	errMsg      string
	errKind     audit.Kind
	startedAt   time.Time
	completedAt time.Time
	run         uint64
	now         func() time.Time
}

func New() *Session {
	return &Session{status: StatusIdle, now: time.Now}
}

// AddFiles appends files and clears any previous error message.
func (s *Session) AddFiles(files ...ingest.ReportFile) {
	if len(files) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files.Add(files...)
	s.clearErrorLocked()
}

// RemoveFile deletes one file by id; unknown ids are ignored.
func (s *Session) RemoveFile(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files.Remove(id)
}

// ClearFiles removes every file and the error message.
func (s *Session) ClearFiles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files.Clear()
	s.clearErrorLocked()
}

// Begin moves an idle or failed session into auditing and returns the run to
// send. With no files it returns false and leaves the state untouched.
func (s *Session) Begin() (Run, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusIdle, StatusError:
	default:
		return Run{}, false, ErrBusy
	}
	if s.files.Len() == 0 {
		return Run{}, false, nil
	}
	logger := common.Logger()
	s.status = StatusParsing
	s.clearErrorLocked()
	files := s.files.Files()
	s.status = StatusAuditing
	s.startedAt = s.now()
	s.completedAt = time.Time{}
	s.run++
	logger.Info("session: audit started", "run", s.run, "files", len(files))
	return Run{ID: s.run, Files: files}, true, nil
}

// Finish records the outcome of run. On failure the files are kept so the
// operator can retry.
func (s *Session) Finish(run Run, res audit.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuditing || run.ID != s.run {
		return ErrNotAuditing
	}
	logger := common.Logger()
	s.completedAt = s.now()
	if res.OK() {
		s.status = StatusComplete
		s.report = res.Report
		logger.Info("session: audit complete", "elapsed", s.completedAt.Sub(s.startedAt))
		return nil
	}
	s.status = StatusError
	s.report = nil
	s.errMsg = audit.DefaultErrorMessage
	s.errKind = ""
	if res.Err != nil {
		s.errMsg = res.Err.Message
		s.errKind = res.Err.Kind
	}
	logger.Warn("session: audit failed", "kind", s.errKind, "error", s.errMsg)
	return nil
}

// Reset discards files, report and error and returns to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	s.report = nil
	s.files.Clear()
	s.clearErrorLocked()
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
	s.run++
	common.Logger().Info("session: reset")
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Status:      s.status,
		Files:       s.files.Files(),
		Report:      s.report,
		Error:       s.errMsg,
		ErrorKind:   s.errKind,
		StartedAt:   s.startedAt,
		CompletedAt: s.completedAt,
	}
}

func (s *Session) clearErrorLocked() {
	s.errMsg = ""
	s.errKind = ""
}
