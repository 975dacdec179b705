package web

import (
	"log/slog"
	"net/http"

	"github.com/mgracar/pinventory/internal/auth"
)

type loginPageData struct {
	PageData
	Redirect string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &loginPageData{
		PageData: PageData{Title: "Enter PIN"},
		Redirect: r.URL.Query().Get("redirect"),
	})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	pin := r.FormValue("pin")
	redirect := r.FormValue("redirect")

	if pin == "" || !auth.CheckPIN(s.PINHash, pin) {
		slog.Warn("failed PIN attempt", "remote", r.RemoteAddr)
		s.Templates.Render(w, "login.html", &loginPageData{
			PageData: PageData{Title: "Enter PIN", Error: "Invalid PIN. Try again."},
			Redirect: redirect,
		})
		return
	}

	token, _, err := auth.GenerateSessionToken(s.SessionSecret)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.Templates.Render(w, "login.html", &loginPageData{
			PageData: PageData{Title: "Enter PIN", Error: "Login failed, try again."},
			Redirect: redirect,
		})
		return
	}

	// No MaxAge: the cookie lasts until the browser session ends.
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.Redirect(w, r, safeRedirectTarget(redirect), http.StatusSeeOther)
}
