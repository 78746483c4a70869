// File path: internal/ingest/ingest.go
package ingest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/common/telemetry"
)

// Status of an uploaded report. New files start out pending.
type Status string

const (
	StatusPending Status = "pending"
	StatusParsed  Status = "parsed"
	StatusError   Status = "error"
)

var reportExtensions = []string{".html", ".htm"}

// ReportFile is one uploaded report held in memory.
type ReportFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content string `json:"-"`
	Status  Status `json:"status"`
}

// NewFile wraps content read from name with a fresh identifier.
func NewFile(name, content string) ReportFile {
	return ReportFile{
		ID:      uuid.NewString(),
		Name:    name,
		Size:    int64(len(content)),
		Content: content,
		Status:  StatusPending,
	}
}

// SizeKB is the size in kilobytes with one decimal, as shown in the file list.
func (f ReportFile) SizeKB() string {
	return fmt.Sprintf("%.1f KB", float64(f.Size)/1024)
}

// IsReportFile reports whether name carries one of the markup report
// extensions.
func IsReportFile(name string) bool {
	for _, ext := range reportExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Batch is the outcome of reading one selection of files.
type Batch struct {
	Files   []ReportFile
	Skipped []string
}

// ReadUploads reads every report among headers as text. Other files are
// skipped by name. The returned files keep the order of headers.
func ReadUploads(ctx context.Context, headers []*multipart.FileHeader) (Batch, error) {
	names := make([]string, len(headers))
	for i, fh := range headers {
		names[i] = filepath.Base(fh.Filename)
	}
	return readAll(ctx, names, func(i int) (io.ReadCloser, error) {
		return headers[i].Open()
	})
}

// ReadPaths is ReadUploads for files on disk.
func ReadPaths(ctx context.Context, paths []string) (Batch, error) {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return readAll(ctx, names, func(i int) (io.ReadCloser, error) {
		return os.Open(paths[i])
	})
}

func readAll(ctx context.Context, names []string, open func(int) (io.ReadCloser, error)) (Batch, error) {
	logger := common.Logger()
	slots := make([]*ReportFile, len(names))
	var skipped []string

	group, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		if !IsReportFile(name) {
			skipped = append(skipped, name)
			continue
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rc, err := open(i)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			file := NewFile(name, string(data))
			slots[i] = &file
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Batch{}, err
	}

	batch := Batch{Skipped: skipped}
	for _, slot := range slots {
		if slot != nil {
			batch.Files = append(batch.Files, *slot)
		}
	}
	if len(skipped) > 0 {
		logger.Debug("ingest: skipped non-report files", "skipped", skipped)
	}
	telemetry.RecordIngest(len(batch.Files), len(skipped))
	logger.Info("ingest: batch read", "files", len(batch.Files), "skipped", len(skipped))
	return batch, nil
}

// Collection is the ordered set of files selected for the next audit.
// Duplicates by name or content are kept. It is not safe for concurrent use.
type Collection struct {
	files []ReportFile
}

func (c *Collection) Add(files ...ReportFile) {
	c.files = append(c.files, files...)
}

// Remove deletes the file with id and reports whether one was found.
func (c *Collection) Remove(id string) bool {
	for i, f := range c.files {
		if f.ID == id {
			c.files = append(c.files[:i], c.files[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection) Clear() {
	c.files = nil
}

func (c *Collection) Len() int {
	return len(c.files)
}

// Files returns a copy in insertion order.
func (c *Collection) Files() []ReportFile {
	if len(c.files) == 0 {
		return nil
	}
	out := make([]ReportFile, len(c.files))
	copy(out, c.files)
	return out
}
