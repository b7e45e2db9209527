package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and returned to the client
// as the user message from core.MapError, as JSON for API callers and as an
// HTML page otherwise.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/logging"
	"github.com/JonMunkholm/tohands-inventory/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Action  string            `json:"action,omitempty"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError handles error responses with user-friendly messages.
// Errors that match no known pattern are logged at error level whatever
// their status, since support only has the log to go on.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	uerr := core.NewUserError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", uerr.Technical.Error(),
		"code", uerr.User.Code,
	}
	if statusCode >= http.StatusInternalServerError || !core.IsUserFacing(err) {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	if wantsJSON(r) {
		respondErrorJSON(w, uerr, statusCode)
	} else {
		respondErrorHTML(w, r, uerr.User, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, uerr *core.UserError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   uerr.Error(),
		Message: uerr.User.Message,
		Action:  uerr.User.Action,
		Code:    uerr.User.Code,
		Fields:  fieldErrors(uerr),
	})
}

// respondErrorHTML writes a standalone HTML error page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = templates.ErrorPage(statusCode, msg).Render(r.Context(), w)
}

// pageProblem turns an error met while assembling the page into the banner
// shown above the form.
func pageProblem(r *http.Request, err error) *core.UserMessage {
	uerr := core.NewUserError(err)
	logging.FromContext(r.Context()).Warn("page rendered with problem",
		"error", uerr.Technical.Error(),
		"code", uerr.User.Code,
	)
	return &uerr.User
}

// statusForError picks the HTTP status for an error returned by the service.
func statusForError(err error) int {
	var verrs core.ValidationErrors
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnknownFormat):
		return http.StatusNotFound
	case errors.Is(err, core.ErrSessionNotFound):
		return http.StatusGone
	case errors.Is(err, core.ErrTooManyExports):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fieldErrors returns per-field messages for validation failures.
func fieldErrors(err error) map[string]string {
	var verrs core.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.ByField()
	}
	return nil
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	// API routes default to JSON
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
