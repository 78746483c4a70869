// File path: internal/api/files_handler.go
package api

import (
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/ingest"
)

const uploadField = "files"

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	if err := r.ParseMultipartForm(s.cfg.UploadMemory); err != nil {
		logger.Warn("api: upload form parse failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	var headers = r.MultipartForm.File[uploadField]
	batch, err := ingest.ReadUploads(r.Context(), headers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.session.AddFiles(batch.Files...)
	logger.Info("api: files uploaded", "accepted", len(batch.Files), "skipped", len(batch.Skipped))
	done(w, r, http.StatusOK, uploadResponse{Added: batch.Files, Skipped: batch.Skipped}, "/")
}

func (s *Server) handleRemoveFile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	removed := s.session.RemoveFile(id)
	common.Logger().Debug("api: remove file", "id", id, "removed", removed)
	done(w, r, http.StatusOK, map[string]bool{"removed": removed}, "/")
}

func (s *Server) handleClearFiles(w http.ResponseWriter, r *http.Request) {
	s.session.ClearFiles()
	done(w, r, http.StatusOK, statusResponseFrom(s.session.Snapshot()), "/")
}
