package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/logging"
	"github.com/go-chi/chi/v5"
)

// handleExport serves the table as a file in the requested format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "format")

	format, data, err := s.service.Export(r.Context(), sessionID(r), key)
	if err != nil {
		if errors.Is(err, core.ErrTooManyExports) {
			w.Header().Set("Retry-After", "5")
		}
		s.respondError(w, r, err, statusForError(err))
		return
	}

	filename := core.ExportFileName(format)
	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Cache-Control", "no-store")

	logger := logging.WithFields(r.Context(), "format", format.Key)
	if _, err := w.Write(data); err != nil {
		logger.Warn("export write failed", "error", err)
		return
	}
	logger.Info("export served", "bytes", len(data))
}

// handleListRows returns the visitor's rows as JSON, in table order.
func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.Rows(r.Context(), sessionID(r))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	out := make([]rowResponse, len(rows))
	for i, row := range rows {
		out[i] = toRowResponse(row)
	}
	writeJSON(w, out)
}
