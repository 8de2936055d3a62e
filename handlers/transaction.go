package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/database/dbhelper"
	"github.com/ray-remotestate/resto-pos/listing"
	"github.com/ray-remotestate/resto-pos/models"
	"github.com/ray-remotestate/resto-pos/utils"
)

const defaultTransactionLimit = 7

type OrderBook interface {
	Place(order models.OrderPayload) (*models.Transaction, error)
	List(filters dbhelper.TransactionFilters, sort listing.Sort, page listing.Page) ([]models.Transaction, int, error)
	GetByID(id uuid.UUID) (*models.TransactionDetail, error)
	ListItems(id uuid.UUID) ([]models.LineItem, error)
	UpdateStatus(id uuid.UUID, status models.TransactionStatus) (*models.Transaction, error)
	Invalidate(id uuid.UUID) error
}

type TransactionHandler struct {
	Orders OrderBook
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	if err := payload.Validate(); err != nil {
		utils.RespondError(w, apperrors.Validation(err))
		return
	}

	receipt, err := h.Orders.Place(payload)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "transaction created", receipt)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := dbhelper.TransactionFilters{
		Status: q.Get("status"),
	}
	if subtotal, err := strconv.ParseFloat(q.Get("subtotal"), 64); err == nil && subtotal > 0 {
		filters.MinSubtotal = subtotal
	}
	if raw := q.Get("date"); raw != "" {
		day, err := utils.ParseDate(raw)
		if err != nil {
			utils.RespondError(w, apperrors.Validationf("date must be YYYY-MM-DD"))
			return
		}
		filters.Before = &day
	}

	sort := listing.SortFromQuery(q.Get("sortBy"), q.Get("sortOrder"), dbhelper.TransactionSortColumns, "id")
	page := listing.PageFromQuery(q.Get("page"), q.Get("limit"), defaultTransactionLimit)

	transactions, total, err := h.Orders.List(filters, sort, page)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondList(w, "transactions listed", transactions, listing.BuildMeta(page, total))
}

func (h *TransactionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	detail, err := h.Orders.GetByID(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "transaction detail", detail)
}

func (h *TransactionHandler) Items(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	items, err := h.Orders.ListItems(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "transaction items", items)
}

func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var payload struct {
		Status models.TransactionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	if !payload.Status.IsValid() {
		utils.RespondError(w, apperrors.Validationf("status must be one of PENDING, PROSES, SELESAI"))
		return
	}

	transaction, err := h.Orders.UpdateStatus(id, payload.Status)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "transaction status updated", transaction)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if err := h.Orders.Invalidate(id); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, "transaction deleted", nil)
}

func transactionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, apperrors.Validationf("invalid transaction id")
	}
	return id, nil
}
