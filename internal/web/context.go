package web

import (
	"net/http"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
)

// sessionID returns the visitor's session id set by sessionMiddleware.
func sessionID(r *http.Request) string {
	return core.SessionIDFromContext(r.Context())
}
