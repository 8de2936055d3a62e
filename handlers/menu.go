package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/database/dbhelper"
	"github.com/ray-remotestate/resto-pos/listing"
	"github.com/ray-remotestate/resto-pos/models"
	"github.com/ray-remotestate/resto-pos/utils"
)

const defaultMenuLimit = 10

type MenuCatalog interface {
	Create(payload models.MenuItemPayload) (*models.MenuItem, error)
	GetByID(id int64) (*models.MenuItem, error)
	List(filters dbhelper.MenuFilters, sort listing.Sort, page listing.Page) ([]models.MenuItem, int, error)
	Update(id int64, payload models.MenuItemPayload) (*models.MenuItem, error)
	Delete(id int64) error
}

type MenuHandler struct {
	Catalog MenuCatalog
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.MenuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	if err := payload.Validate(); err != nil {
		utils.RespondError(w, apperrors.Validation(err))
		return
	}

	item, err := h.Catalog.Create(payload)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "menu created", item)
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := dbhelper.MenuFilters{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}
	if price, err := strconv.ParseFloat(q.Get("price"), 64); err == nil && price > 0 {
		filters.MinPrice = price
	}
	if stock, err := strconv.Atoi(q.Get("stock")); err == nil && stock > 0 {
		filters.MinStock = stock
	}

	sort := listing.SortFromQuery(q.Get("sortBy"), q.Get("sortOrder"), dbhelper.MenuSortColumns, "id")
	page := listing.PageFromQuery(q.Get("page"), q.Get("limit"), defaultMenuLimit)

	items, total, err := h.Catalog.List(filters, sort, page)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondList(w, "menu listed", items, listing.BuildMeta(page, total))
}

func (h *MenuHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := menuID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	item, err := h.Catalog.GetByID(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "menu detail", item)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := menuID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var payload models.MenuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	if err := payload.Validate(); err != nil {
		utils.RespondError(w, apperrors.Validation(err))
		return
	}

	item, err := h.Catalog.Update(id, payload)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "menu updated", item)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := menuID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if err := h.Catalog.Delete(id); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "menu deleted", nil)
}

func menuID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validationf("invalid menu id")
	}
	return id, nil
}
