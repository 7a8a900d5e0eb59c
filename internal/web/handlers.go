package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contact-importer/internal/importer"
	"contact-importer/internal/logging"
)

// startImportResponse acknowledges an accepted import.
type startImportResponse struct {
	ImportID string `json:"import_id"`
	Status   string `json:"status"`
}

// handleStartImport accepts a multipart contact file and dispatches
// the import. The response is sent before any row is processed; the
// client polls the status endpoints for the outcome.
func (s *Server) handleStartImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	ownerID, err := uuid.Parse(strings.TrimSpace(r.FormValue("user_id")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "user_id must be a valid UUID")
		return
	}

	mapping, err := parseColumnMapping(r.FormValue("columns"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "columns must be a JSON object of field to header names")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	if len(data) == 0 {
		writeError(w, r, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	importID := s.service.Start(data, mapping, ownerID)

	logging.FromContext(r.Context()).Info("import accepted",
		"import_id", importID,
		"owner_id", ownerID.String(),
		"filename", header.Filename,
		"size", len(data),
	)

	writeJSON(w, r, http.StatusAccepted, startImportResponse{
		ImportID: importID,
		Status:   string(importer.PhaseProcessing),
	})
}

// handleImportStatus returns a point-in-time snapshot of one import.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.Status(chi.URLParam(r, "importID"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "import not found")
		return
	}
	writeJSON(w, r, http.StatusOK, status)
}

// handleImportResult waits for an import to finish and returns its
// final counts. The wait is bounded by the request timeout middleware.
func (s *Server) handleImportResult(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.Result(r.Context(), chi.URLParam(r, "importID"))
	if err != nil {
		if r.Context().Err() != nil {
			writeError(w, r, http.StatusGatewayTimeout, "import still running")
			return
		}
		writeError(w, r, http.StatusNotFound, "import not found")
		return
	}
	writeJSON(w, r, http.StatusOK, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// parseColumnMapping decodes the optional columns form value.
func parseColumnMapping(raw string) (importer.ColumnMapping, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var mapping importer.ColumnMapping
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}
