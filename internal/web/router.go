package web

import (
	"database/sql"
	"net/http"

	"github.com/mgracar/pinventory/internal/scan"
	webembed "github.com/mgracar/pinventory/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, scanner *scan.Scanner, sessionSecret, pinHash string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:            db,
		Templates:     templates,
		Scanner:       scanner,
		SessionSecret: sessionSecret,
		PINHash:       pinHash,
	}

	mux := http.NewServeMux()
	sessionAuth := SessionMiddleware(sessionSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// PIN gate.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)

	// Inventory list view.
	mux.Handle("GET /{$}", sessionAuth(http.HandlerFunc(s.InventoryPage)))
	mux.Handle("POST /items/add", sessionAuth(http.HandlerFunc(s.ItemAddSubmit)))
	mux.Handle("POST /items/update", sessionAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("POST /items/delete", sessionAuth(http.HandlerFunc(s.ItemDeleteSubmit)))

	// Scan workflow.
	mux.Handle("GET /scan", sessionAuth(http.HandlerFunc(s.ScanPage)))
	mux.Handle("POST /scan", sessionAuth(http.HandlerFunc(s.ScanSubmit)))
	mux.Handle("POST /scan/mode", sessionAuth(http.HandlerFunc(s.ToggleModeSubmit)))
	mux.Handle("POST /scan/category", sessionAuth(http.HandlerFunc(s.SetCategorySubmit)))
	mux.Handle("POST /scan/category/new", sessionAuth(http.HandlerFunc(s.AddCategorySubmit)))

	return mux, nil
}
