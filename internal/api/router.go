package api

import (
	"database/sql"
	"net/http"

	"github.com/mgracar/pinventory/internal/scan"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, scanner *scan.Scanner, sessionSecret, pinHash string) http.Handler {
	mux := http.NewServeMux()
	requireAuth := AuthMiddleware(sessionSecret, db)

	authHandler := &AuthHandler{SessionSecret: sessionSecret, PINHash: pinHash}
	itemHandler := &ItemHandler{DB: db}
	scanHandler := &ScanHandler{DB: db, Scanner: scanner}

	mux.HandleFunc("POST /api/login", authHandler.Login)

	mux.Handle("GET /api/items", requireAuth(http.HandlerFunc(itemHandler.List)))
	mux.Handle("POST /api/items", requireAuth(http.HandlerFunc(itemHandler.Add)))
	mux.Handle("GET /api/items/{barcode}", requireAuth(http.HandlerFunc(itemHandler.Get)))
	mux.Handle("PUT /api/items/{barcode}", requireAuth(http.HandlerFunc(itemHandler.Update)))
	mux.Handle("DELETE /api/items/{barcode}", requireAuth(http.HandlerFunc(itemHandler.Delete)))

	mux.Handle("GET /api/scan", requireAuth(http.HandlerFunc(scanHandler.State)))
	mux.Handle("POST /api/scan", requireAuth(http.HandlerFunc(scanHandler.Scan)))
	mux.Handle("POST /api/scan/mode", requireAuth(http.HandlerFunc(scanHandler.ToggleMode)))
	mux.Handle("PUT /api/scan/category", requireAuth(http.HandlerFunc(scanHandler.SetCategory)))

	return mux
}
