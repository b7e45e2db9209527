package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/logging"
	"github.com/JonMunkholm/tohands-inventory/internal/web/templates"
)

// handleAddProduct appends one submitted product to the table.
//
// A valid submission redirects back to the page (Post/Redirect/Get), which
// then shows the success notice and an empty form. An invalid one re-renders
// the page with the submitted values and per-field messages.
func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxFormBytes)

	if err := r.ParseForm(); err != nil {
		err = bodyError(err)
		s.respondError(w, r, err, statusForError(err))
		return
	}

	form := productFormFromValues(r.PostForm)
	row, err := s.service.AddProduct(r.Context(), sessionID(r), form)

	var verrs core.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		s.renderInvalidForm(w, r, form, verrs)
		return
	case err != nil:
		s.respondError(w, r, err, statusForError(err))
		return
	}

	logging.FromContext(r.Context()).Info("product added", "sku_id", row.SKUID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderInvalidForm shows the page again with the rejected values.
// If the table cannot be read the form still comes back, with the
// problem shown above it, so the typed values are not lost.
func (s *Server) renderInvalidForm(w http.ResponseWriter, r *http.Request, form core.ProductForm, verrs core.ValidationErrors) {
	logging.FromContext(r.Context()).Info("product rejected", "fields", len(verrs))

	data := templates.PageData{
		Values: formValues(form),
		Errors: verrs.ByField(),
	}
	rows, err := s.service.Rows(r.Context(), sessionID(r))
	if err != nil {
		data.Problem = pageProblem(r, err)
	} else {
		data.Rows = rows
	}

	s.renderPage(w, r, http.StatusUnprocessableEntity, data)
}

// handleCreateRow is the JSON counterpart of handleAddProduct.
func (s *Server) handleCreateRow(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxFormBytes)

	var req productRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		err = bodyError(err)
		s.respondError(w, r, err, statusForError(err))
		return
	}

	row, err := s.service.AddProduct(r.Context(), sessionID(r), req.form())
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	logging.FromContext(r.Context()).Info("product added", "sku_id", row.SKUID, "via", "api")
	writeJSONStatus(w, http.StatusCreated, toRowResponse(row))
}

// errInvalidBody marks request bodies that could not be parsed.
var errInvalidBody = errors.New("invalid request body")

// bodyError classifies a failure to read the request body.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}
