package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mailmorph/mailmorph/internal/core"
	"github.com/mailmorph/mailmorph/internal/logging"
)

// handleUpload accepts a multipart form with the file and the domain pair,
// runs the transformation, and returns the ReplacementResult as JSON.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Storage.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondErrorMessage(w, r, "file too large or invalid form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondErrorMessage(w, r, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	oldDomain := r.FormValue("old_domain")
	newDomain := r.FormValue("new_domain")

	content, err := io.ReadAll(file)
	if err != nil {
		respondErrorMessage(w, r, "could not read uploaded file", http.StatusBadRequest)
		return
	}

	logger := logging.WithFields(r.Context(), "file", header.Filename)
	logger.Info("upload received", "size", len(content))

	result, err := s.service.HandleUpload(r.Context(), content, header.Filename, oldDomain, newDomain)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	writeJSON(w, result)
}

// handlePreview is the dry-run variant of handleUpload: same inputs, returns
// sample changes without storing anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Storage.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondErrorMessage(w, r, "file too large or invalid form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondErrorMessage(w, r, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondErrorMessage(w, r, "could not read uploaded file", http.StatusBadRequest)
		return
	}

	report, err := s.service.HandlePreview(r.Context(), content, r.FormValue("old_domain"), r.FormValue("new_domain"))
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	writeJSON(w, report)
}

// handleDownload streams a stored artifact as an attachment.
// Expired or unknown identifiers surface as "link expired or invalid".
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "artifactID")

	data, info, err := s.service.HandleDownload(r.Context(), id)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, core.OutputFileName(info.CreatedAt)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Warn("download write failed", "error", err)
	}
}

// validateRequest is the JSON body for POST /api/validate.
type validateRequest struct {
	OldDomain string `json:"old_domain"`
	NewDomain string `json:"new_domain"`
}

// handleValidateDomains gives interactive field-level domain feedback.
func (s *Server) handleValidateDomains(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, r, "invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, s.service.ValidateDomainPair(req.OldDomain, req.NewDomain))
}

// handleStats returns directory-level retention statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.DirectoryStats()
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, snap)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
