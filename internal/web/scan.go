package web

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/mgracar/pinventory/internal/scan"
	"github.com/mgracar/pinventory/internal/store"
)

type scanPageData struct {
	PageData
	Mode       string
	Category   string
	Categories []string
	Result     *scan.Result
}

// ScanPage handles GET /scan.
func (s *Server) ScanPage(w http.ResponseWriter, r *http.Request) {
	s.renderScan(w, r, nil)
}

// renderScan renders the scan page with the current session state and
// an optional scan result.
func (s *Server) renderScan(w http.ResponseWriter, r *http.Request, result *scan.Result) {
	sess := GetSession(r.Context())

	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// A freshly added session category is selectable before any item
	// carries it.
	if sess.Category != "" && !slices.Contains(categories, sess.Category) {
		categories = append(categories, sess.Category)
		slices.Sort(categories)
	}

	s.Templates.Render(w, "scan.html", &scanPageData{
		PageData:   PageData{Title: "Scan Items"},
		Mode:       sess.Mode,
		Category:   sess.Category,
		Categories: categories,
		Result:     result,
	})
}

// ScanSubmit handles POST /scan.
func (s *Server) ScanSubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())

	result, err := s.Scanner.Scan(r.Context(), sess, r.FormValue("barcode"), r.FormValue("name"))
	if err != nil {
		slog.Error("scan failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if result.Item != nil {
		slog.Info("scan processed", "mode", sess.Mode, "barcode", result.Item.Barcode,
			"quantity", result.Item.Quantity, "created", result.Created)
	}
	s.renderScan(w, r, result)
}

// ToggleModeSubmit handles POST /scan/mode.
func (s *Server) ToggleModeSubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())

	mode, err := store.ToggleSessionMode(r.Context(), s.DB, sess.ID)
	if err != nil {
		slog.Error("failed to toggle scan mode", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("scan mode toggled", "mode", mode)
	http.Redirect(w, r, "/scan", http.StatusSeeOther)
}

// SetCategorySubmit handles POST /scan/category.
func (s *Server) SetCategorySubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())

	category := r.FormValue("selected_category")
	if err := store.SetSessionCategory(r.Context(), s.DB, sess.ID, category); err != nil {
		slog.Error("failed to set scan category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/scan", http.StatusSeeOther)
}

// AddCategorySubmit handles POST /scan/category/new. A new category is
// only a session selection until the first item is created with it.
func (s *Server) AddCategorySubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())

	category := strings.TrimSpace(r.FormValue("new_category"))
	if category != "" {
		if err := store.SetSessionCategory(r.Context(), s.DB, sess.ID, category); err != nil {
			slog.Error("failed to add scan category", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		slog.Info("scan category added", "category", category)
	}

	http.Redirect(w, r, "/scan", http.StatusSeeOther)
}
