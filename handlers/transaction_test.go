package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/database/dbhelper"
	"github.com/ray-remotestate/resto-pos/listing"
	"github.com/ray-remotestate/resto-pos/models"
)

type fakeOrders struct {
	placeCalls  int
	receipt     *models.Transaction
	placeErr    error
	detail      *models.TransactionDetail
	detailErr   error
	listSort    listing.Sort
	listPage    listing.Page
	listFilters dbhelper.TransactionFilters
	listTotal   int
	invalidated []uuid.UUID
}

func (f *fakeOrders) Place(order models.OrderPayload) (*models.Transaction, error) {
	f.placeCalls++
	return f.receipt, f.placeErr
}

func (f *fakeOrders) List(filters dbhelper.TransactionFilters, sort listing.Sort, page listing.Page) ([]models.Transaction, int, error) {
	f.listFilters = filters
	f.listSort = sort
	f.listPage = page
	return nil, f.listTotal, nil
}

func (f *fakeOrders) GetByID(id uuid.UUID) (*models.TransactionDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeOrders) ListItems(id uuid.UUID) ([]models.LineItem, error) {
	if f.detail == nil {
		return nil, f.detailErr
	}
	return f.detail.Items, nil
}

func (f *fakeOrders) UpdateStatus(id uuid.UUID, status models.TransactionStatus) (*models.Transaction, error) {
	return f.receipt, nil
}

func (f *fakeOrders) Invalidate(id uuid.UUID) error {
	f.invalidated = append(f.invalidated, id)
	return nil
}

type testEnvelope struct {
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *listing.Meta   `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func TestCreateTransactionValidationWritesNothing(t *testing.T) {
	fake := &fakeOrders{}
	h := &TransactionHandler{Orders: fake}

	bodies := []string{
		`not json`,
		`{"items":[],"money":50000,"payment_method":"CASH"}`,
		`{"items":[{"id_menu":1,"quantity":0}],"money":50000,"payment_method":"CASH"}`,
		`{"items":[{"id_menu":1,"quantity":2}],"money":-1,"payment_method":"CASH"}`,
		`{"items":[{"id_menu":1,"quantity":2}],"money":50000,"payment_method":"GOPAY"}`,
	}

	for _, body := range bodies {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transaction", strings.NewReader(body))
		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}

	if fake.placeCalls != 0 {
		t.Errorf("store was reached %d times before validation passed", fake.placeCalls)
	}
}

func TestCreateTransactionSuccess(t *testing.T) {
	receipt := &models.Transaction{
		ID:       uuid.New(),
		Subtotal: 40000,
		Money:    50000,
		Refund:   10000,
		Status:   models.StatusCompleted,
		IsValid:  true,
	}
	fake := &fakeOrders{receipt: receipt}
	h := &TransactionHandler{Orders: fake}

	body := `{"items":[{"id_menu":1,"quantity":2}],"money":50000,"payment_method":"CASH"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transaction", strings.NewReader(body))
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var got models.Transaction
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if got.Subtotal != 40000 || got.Refund != 10000 {
		t.Errorf("receipt = %+v, want subtotal 40000 refund 10000", got)
	}
}

func TestCreateTransactionConflict(t *testing.T) {
	fake := &fakeOrders{placeErr: apperrors.Conflictf("insufficient stock for Es Teh")}
	h := &TransactionHandler{Orders: fake}

	body := `{"items":[{"id_menu":1,"quantity":99}],"money":50000,"payment_method":"CASH"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transaction", strings.NewReader(body))
	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if env := decodeEnvelope(t, rec); !strings.Contains(env.Message, "insufficient stock") {
		t.Errorf("message = %q", env.Message)
	}
}

func TestListTransactionsSortFallbackAndMeta(t *testing.T) {
	fake := &fakeOrders{listTotal: 12}
	h := &TransactionHandler{Orders: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transaction?sortBy=password&sortOrder=down&page=2&limit=5", nil)
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fake.listSort.Column != "id" || fake.listSort.Direction != "ASC" {
		t.Errorf("sort did not fall back: %+v", fake.listSort)
	}

	env := decodeEnvelope(t, rec)
	if env.Pagination == nil {
		t.Fatal("missing pagination meta")
	}
	if env.Pagination.TotalPages != 3 || !env.Pagination.HasNextPage || !env.Pagination.HasPrevPage {
		t.Errorf("meta = %+v", env.Pagination)
	}
}

func TestListTransactionsDateFilter(t *testing.T) {
	fake := &fakeOrders{}
	h := &TransactionHandler{Orders: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transaction?date=2026-08-15", nil)
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fake.listFilters.Before == nil || !fake.listFilters.Before.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date filter not parsed: %+v", fake.listFilters.Before)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/transaction?date=15-08-2026", nil)
	h.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date format: status = %d, want 400", rec.Code)
	}
}

func TestTransactionDetailItemsSumToSubtotal(t *testing.T) {
	id := uuid.New()
	fake := &fakeOrders{detail: &models.TransactionDetail{
		Transaction: models.Transaction{ID: id, Subtotal: 55000, Money: 60000, Refund: 5000, Status: models.StatusCompleted, IsValid: true},
		Items: []models.LineItem{
			{MenuItemID: 1, Quantity: 2, Price: 20000, Subtotal: 40000},
			{MenuItemID: 2, Quantity: 1, Price: 15000, Subtotal: 15000},
		},
		Payment: &models.Payment{Method: models.PaymentCash, Amount: 60000},
	}}
	h := &TransactionHandler{Orders: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transaction/"+id.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	h.Detail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var detail models.TransactionDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}

	var sum float64
	for _, item := range detail.Items {
		sum += item.Subtotal
	}
	if sum != detail.Subtotal {
		t.Errorf("items sum to %v but header subtotal is %v", sum, detail.Subtotal)
	}
	if detail.Payment == nil || detail.Payment.Amount != detail.Money {
		t.Errorf("payment should carry the tendered amount: %+v", detail.Payment)
	}
}

func TestTransactionDetailNotFound(t *testing.T) {
	id := uuid.New()
	fake := &fakeOrders{detailErr: apperrors.NotFoundf("transaction %s not found", id)}
	h := &TransactionHandler{Orders: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transaction/"+id.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	h.Detail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTransactionInvalidID(t *testing.T) {
	h := &TransactionHandler{Orders: &fakeOrders{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transaction/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	h.Detail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateTransactionStatus(t *testing.T) {
	id := uuid.New()
	fake := &fakeOrders{receipt: &models.Transaction{ID: id, Status: models.StatusInProgress}}
	h := &TransactionHandler{Orders: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/transaction/"+id.String(), strings.NewReader(`{"status":"DONE"}`))
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	h.UpdateStatus(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/transaction/"+id.String(), strings.NewReader(`{"status":"PROSES"}`))
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	h.UpdateStatus(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid status: got %d, want 200", rec.Code)
	}
}

func TestDeleteTransactionIsLogical(t *testing.T) {
	id := uuid.New()
	fake := &fakeOrders{}
	h := &TransactionHandler{Orders: fake}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/transaction/"+id.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(fake.invalidated) != 1 || fake.invalidated[0] != id {
		t.Errorf("expected invalidate call for %s, got %v", id, fake.invalidated)
	}
}
