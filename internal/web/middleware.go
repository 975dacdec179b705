package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mgracar/pinventory/internal/auth"
	"github.com/mgracar/pinventory/internal/model"
	"github.com/mgracar/pinventory/internal/store"
)

type webContextKey string

const sessionKey webContextKey = "session"

// SessionMiddleware validates the session cookie, loads (or lazily
// creates) the scan session, and adds it to the request context.
// Requests without a valid session are sent to the PIN gate with the
// original destination preserved.
func SessionMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value == "" {
				redirectToLogin(w, r)
				return
			}

			sessionID, err := auth.ValidateSessionToken(secret, cookie.Value)
			if err != nil {
				clearSessionCookie(w)
				redirectToLogin(w, r)
				return
			}

			sess, err := store.GetOrCreateSession(r.Context(), db, sessionID)
			if err != nil {
				slog.Error("failed to load session", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetSession retrieves the scan session from the request context.
func GetSession(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionKey).(*model.Session)
	return sess
}

// safeRedirectTarget confines a post-login redirect to the app's own
// pages: it must be a local absolute path, never a full URL or a
// protocol-relative one.
func safeRedirectTarget(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return "/"
	}
	return target
}
