package web

import (
	"net/http"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/logging"
)

// sessionMiddleware resolves the session cookie to a live session, starting
// a new one when the cookie is missing, unknown or expired. Client-chosen ids
// are never adopted: a new session always gets a server-generated id.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			id = c.Value
		}

		sess, created, err := s.service.OpenSession(r.Context(), id)
		if err != nil {
			s.respondError(w, r, err, http.StatusServiceUnavailable)
			return
		}

		ctx := core.ContextWithSessionID(r.Context(), sess.ID)
		if created {
			http.SetCookie(w, s.sessionCookie(sess.ID))
			logging.FromContext(ctx).Info("session started", "had_cookie", id != "")
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionCookie builds the cookie carrying the session id.
// It has no expiry; the server forgets idle sessions on its own.
func (s *Server) sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
