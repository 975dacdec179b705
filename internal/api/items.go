package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mgracar/pinventory/internal/model"
	"github.com/mgracar/pinventory/internal/store"
)

// ItemHandler handles inventory endpoints.
type ItemHandler struct {
	DB *sql.DB
}

type itemRequest struct {
	Barcode      string `json:"barcode"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
}

type itemListResponse struct {
	Items      []model.Item `json:"items"`
	Categories []string     `json:"categories"`
}

// List handles GET /api/items. Supports the same search/category/sort
// query parameters as the list page.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ItemFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	categories, err := store.ListCategories(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, itemListResponse{Items: items, Categories: categories})
}

// Get handles GET /api/items/{barcode}. Soft-deleted items resolve too.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("barcode"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Add handles POST /api/items with upsert semantics: an existing
// barcode gets its fields overwritten and the quantity added.
func (h *ItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Barcode == "" || req.Name == "" {
		jsonError(w, http.StatusBadRequest, "barcode and name required")
		return
	}
	if req.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}

	item, err := store.UpsertItem(r.Context(), h.DB, req.Barcode, req.Name, req.Quantity,
		req.SerialNumber, req.Category)
	if err != nil {
		slog.Error("failed to add item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	slog.Info("item added", "barcode", item.Barcode, "name", item.Name, "quantity", item.Quantity)
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{barcode}: full overwrite of the
// mutable fields, quantity replaced rather than added.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")

	existing, err := store.GetItem(r.Context(), h.DB, barcode)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, barcode, req.Name, req.Quantity,
		req.SerialNumber, req.Category); err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, barcode)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("item updated", "barcode", barcode, "quantity", req.Quantity)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{barcode}: logical deletion only.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")

	if err := store.SoftDeleteItem(r.Context(), h.DB, barcode); err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	slog.Info("item deleted", "barcode", barcode)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
