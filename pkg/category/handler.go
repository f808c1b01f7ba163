package category

import (
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CategoriesDTO struct {
	Type  string   `json:"type"`
	Names []string `json:"names"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog}
}

// List godoc
// @Summary List configured categories
// @Tags Category
// @Produce json
// @Param type query string true "income or expense"
// @Success 200 {object} CategoriesDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/category [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing categories")
	t, err := ParseType(r.URL.Query().Get("type"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid category type", "type must be 'income' or 'expense'")
		return
	}

	rest.WriteJSON(w, http.StatusOK, CategoriesDTO{Type: string(t), Names: h.catalog.Names(t)})
}
