package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mgracar/pinventory/internal/model"
	"github.com/mgracar/pinventory/internal/store"
)

type inventoryPageData struct {
	PageData
	Items      []model.Item
	Categories []string
	Search     string
	Sort       string
	Category   string
}

// InventoryPage handles GET /.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ItemFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}

	items, err := store.ListItems(r.Context(), s.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	category := filter.Category
	if category == "" {
		category = "All"
	}

	s.Templates.Render(w, "inventory.html", &inventoryPageData{
		PageData:   PageData{Title: "Inventory"},
		Items:      items,
		Categories: categories,
		Search:     filter.Search,
		Sort:       filter.Sort,
		Category:   category,
	})
}

// formCategory resolves the submitted category: a freshly typed one
// takes precedence over the picked one.
func formCategory(r *http.Request) string {
	if c := r.FormValue("new_category"); c != "" {
		return c
	}
	return r.FormValue("category")
}

// ItemAddSubmit handles POST /items/add. Adding an existing barcode
// merges: name/serial/category are overwritten, quantity is added.
func (s *Server) ItemAddSubmit(w http.ResponseWriter, r *http.Request) {
	barcode := r.FormValue("barcode")
	name := r.FormValue("name")
	if barcode == "" || name == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	if quantity < 0 {
		quantity = 0
	}

	item, err := store.UpsertItem(r.Context(), s.DB, barcode, name, quantity,
		r.FormValue("serial_number"), formCategory(r))
	if err != nil {
		slog.Error("failed to add item", "error", err)
		http.Error(w, "failed to add item", http.StatusInternalServerError)
		return
	}

	slog.Info("item added", "barcode", barcode, "name", name, "quantity", item.Quantity)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ItemUpdateSubmit handles POST /items/update. All mutable fields are
// overwritten; the submitted quantity replaces the stored one.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	barcode := r.FormValue("barcode")
	if barcode == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	if quantity < 0 {
		quantity = 0
	}

	err := store.UpdateItem(r.Context(), s.DB, barcode, r.FormValue("name"), quantity,
		r.FormValue("serial_number"), formCategory(r))
	if err != nil {
		slog.Error("failed to update item", "error", err)
		http.Error(w, "failed to update item", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "barcode", barcode, "quantity", quantity)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/delete. Deletion is logical:
// quantity goes to zero, the row stays.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	barcode := r.FormValue("barcode")
	if barcode == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := store.SoftDeleteItem(r.Context(), s.DB, barcode); err != nil {
		slog.Error("failed to delete item", "error", err)
		http.Error(w, "failed to delete item", http.StatusInternalServerError)
		return
	}

	slog.Info("item deleted", "barcode", barcode)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
