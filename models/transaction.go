package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusInProgress TransactionStatus = "PROSES"
	StatusCompleted  TransactionStatus = "SELESAI"
)

func (s TransactionStatus) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentQRIS PaymentMethod = "QRIS"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentQRIS
}

const maxCustomerNameLength = 100

type Transaction struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	Subtotal     float64           `db:"subtotal" json:"subtotal"`
	Money        float64           `db:"money" json:"money"`
	Refund       float64           `db:"refund" json:"refund"`
	Status       TransactionStatus `db:"status" json:"status"`
	IsValid      bool              `db:"is_valid" json:"is_valid"`
	Cashier      *string           `db:"cashier" json:"cashier,omitempty"`
	CustomerName *string           `db:"customer_name" json:"customer_name,omitempty"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
}

type LineItem struct {
	ID            int64     `db:"id" json:"id"`
	TransactionID uuid.UUID `db:"transaction_id" json:"transaction_id"`
	MenuItemID    int64     `db:"menu_item_id" json:"id_menu"`
	MenuName      string    `db:"menu_name" json:"menu_name,omitempty"`
	Quantity      int       `db:"quantity" json:"quantity"`
	Price         float64   `db:"price" json:"price"`
	Subtotal      float64   `db:"subtotal" json:"subtotal"`
}

type Payment struct {
	ID            int64         `db:"id" json:"id"`
	TransactionID uuid.UUID     `db:"transaction_id" json:"transaction_id"`
	Method        PaymentMethod `db:"method" json:"method"`
	Amount        float64       `db:"amount" json:"amount"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// TransactionDetail composes the header with its line items and payment
// for the detail endpoint.
type TransactionDetail struct {
	Transaction
	Items   []LineItem `json:"items"`
	Payment *Payment   `json:"payment,omitempty"`
}

type OrderItemPayload struct {
	MenuItemID int64 `json:"id_menu"`
	Quantity   int   `json:"quantity"`
}

type OrderPayload struct {
	Items         []OrderItemPayload `json:"items"`
	Money         float64            `json:"money"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	Cashier       *string            `json:"cashier,omitempty"`
	CustomerName  *string            `json:"customer_name,omitempty"`
}

// Validate covers the shape of the order only; stock and pricing are checked
// against the catalog inside the commit.
func (p *OrderPayload) Validate() error {
	var errs *multierror.Error

	if len(p.Items) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("items must not be empty"))
	}
	for i, item := range p.Items {
		if item.MenuItemID <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("items[%d]: id_menu is required", i))
		}
		if item.Quantity <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("items[%d]: quantity must be a positive integer", i))
		}
	}
	if p.Money < 0 {
		errs = multierror.Append(errs, fmt.Errorf("money must not be negative"))
	}
	if !p.PaymentMethod.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("payment_method must be one of CASH, CARD, QRIS"))
	}
	if p.CustomerName != nil && len(*p.CustomerName) > maxCustomerNameLength {
		errs = multierror.Append(errs, fmt.Errorf("customer_name must be at most %d characters", maxCustomerNameLength))
	}

	return errs.ErrorOrNil()
}
