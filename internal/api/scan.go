package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mgracar/pinventory/internal/scan"
	"github.com/mgracar/pinventory/internal/store"
)

// ScanHandler handles scan workflow endpoints.
type ScanHandler struct {
	DB      *sql.DB
	Scanner *scan.Scanner
}

type scanRequest struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

// State handles GET /api/scan: the session's current mode and category.
func (h *ScanHandler) State(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, GetSession(r.Context()))
}

// Scan handles POST /api/scan.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := GetSession(r.Context())
	result, err := h.Scanner.Scan(r.Context(), sess, req.Barcode, req.Name)
	if err != nil {
		slog.Error("scan failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if result.Item != nil {
		slog.Info("scan processed", "mode", sess.Mode, "barcode", result.Item.Barcode,
			"quantity", result.Item.Quantity, "created", result.Created)
	}
	jsonResponse(w, http.StatusOK, result)
}

// ToggleMode handles POST /api/scan/mode.
func (h *ScanHandler) ToggleMode(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())

	mode, err := store.ToggleSessionMode(r.Context(), h.DB, sess.ID)
	if err != nil {
		slog.Error("failed to toggle scan mode", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"mode": mode})
}

// SetCategory handles PUT /api/scan/category.
func (h *ScanHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := GetSession(r.Context())
	if err := store.SetSessionCategory(r.Context(), h.DB, sess.ID, req.Category); err != nil {
		slog.Error("failed to set scan category", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"category": req.Category})
}
