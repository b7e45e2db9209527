package web

import (
	"net/http"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/logging"
	"github.com/JonMunkholm/tohands-inventory/internal/web/templates"
)

// handleIndex renders the form and the visitor's table.
// The one-time success notice is consumed here.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, flash, err := s.service.View(r.Context(), sessionID(r))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	s.renderPage(w, r, http.StatusOK, templates.PageData{
		Rows:  sess.Table.Rows(),
		Flash: flash,
	})
}

// renderPage fills in the download links and writes the page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data templates.PageData) {
	if len(data.Rows) > 0 {
		links, err := downloadLinks(data.Rows)
		if err != nil {
			data.Problem = pageProblem(r, err)
		}
		data.Downloads = links
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := templates.Page(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// downloadLinks embeds the CSV as a data URI and links every other
// registered format to its export route.
func downloadLinks(rows []core.InventoryRow) ([]templates.DownloadLink, error) {
	var links []templates.DownloadLink
	for _, f := range core.All() {
		if f.Key == core.DefaultFormat {
			uri, err := core.CSVDataURI(rows)
			if err != nil {
				return nil, err
			}
			links = append(links, templates.DownloadLink{
				Label:    f.Label,
				Href:     uri,
				FileName: core.CSVFileName(),
			})
			continue
		}
		links = append(links, templates.DownloadLink{
			Label:    f.Label,
			Href:     "/export/" + f.Key,
			FileName: core.ExportFileName(f),
		})
	}
	return links, nil
}
