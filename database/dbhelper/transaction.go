package dbhelper

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/database"
	"github.com/ray-remotestate/resto-pos/listing"
	"github.com/ray-remotestate/resto-pos/models"
)

var TransactionSortColumns = []string{"id", "subtotal", "money", "refund", "status", "created_at"}

type TransactionFilters struct {
	MinSubtotal float64
	Status      string
	Before      *time.Time // inclusive of the whole day
}

type OrderStore struct {
	DB *sql.DB
}

// Place prices the order against the catalog and writes the header, line
// items and payment as one atomic unit. The stock decrement is conditional
// on enough stock remaining, so a concurrent order that spent the same
// stock first turns into an insufficient-stock rollback here instead of an
// oversell.
func (s *OrderStore) Place(order models.OrderPayload) (*models.Transaction, error) {
	var id uuid.UUID

	txErr := database.Tx(s.DB, func(tx *sql.Tx) error {
		lines := make([]models.LineItem, 0, len(order.Items))

		for _, item := range order.Items {
			var menuRow models.MenuItem
			err := tx.QueryRow(`SELECT id, name, price, stock FROM menu_items WHERE id = $1`, item.MenuItemID).
				Scan(&menuRow.ID, &menuRow.Name, &menuRow.Price, &menuRow.Stock)
			if err == sql.ErrNoRows {
				return apperrors.NotFoundf("menu %d not found", item.MenuItemID)
			}
			if err != nil {
				return apperrors.Persistence("failed to read menu item", err)
			}

			line, err := priceLine(&menuRow, item.Quantity)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		subtotal, refund, err := orderTotals(lines, order.Money)
		if err != nil {
			return err
		}

		err = tx.QueryRow(`
			INSERT INTO transactions (subtotal, money, refund, status, is_valid, cashier, customer_name)
			VALUES ($1, $2, $3, $4, TRUE, $5, $6)
			RETURNING id`,
			subtotal, order.Money, refund, models.StatusCompleted, order.Cashier, order.CustomerName).Scan(&id)
		if err != nil {
			return apperrors.Persistence("failed to create transaction", err)
		}

		for _, line := range lines {
			res, err := tx.Exec(`
				UPDATE menu_items SET stock = stock - $2
				WHERE id = $1 AND stock >= $2`, line.MenuItemID, line.Quantity)
			if err != nil {
				return apperrors.Persistence("failed to decrement stock", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				// lost the race since the validation read
				return apperrors.Conflictf("insufficient stock for %s", line.MenuName)
			}

			_, err = tx.Exec(`
				INSERT INTO line_items (transaction_id, menu_item_id, quantity, price, subtotal)
				VALUES ($1, $2, $3, $4, $5)`,
				id, line.MenuItemID, line.Quantity, line.Price, line.Subtotal)
			if err != nil {
				return apperrors.Persistence("failed to create line item", err)
			}
		}

		_, err = tx.Exec(`
			INSERT INTO payments (transaction_id, method, amount)
			VALUES ($1, $2, $3)`, id, order.PaymentMethod, order.Money)
		if err != nil {
			return apperrors.Persistence("failed to create payment", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.getHeader(id)
}

func (s *OrderStore) getHeader(id uuid.UUID) (*models.Transaction, error) {
	var t models.Transaction
	err := s.DB.QueryRow(`
		SELECT id, subtotal, money, refund, status, is_valid, cashier, customer_name, created_at
		FROM transactions
		WHERE id = $1 AND is_valid`, id).
		Scan(&t.ID, &t.Subtotal, &t.Money, &t.Refund, &t.Status, &t.IsValid, &t.Cashier, &t.CustomerName, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("transaction %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to read transaction", err)
	}
	return &t, nil
}

func (s *OrderStore) List(filters TransactionFilters, sort listing.Sort, page listing.Page) ([]models.Transaction, int, error) {
	var b listing.Builder
	b.Where("is_valid = TRUE")
	if filters.MinSubtotal > 0 {
		b.Where("subtotal >= $%d", filters.MinSubtotal)
	}
	if filters.Status != "" {
		b.Where("LOWER(status) LIKE LOWER($%d)", "%"+filters.Status+"%")
	}
	if filters.Before != nil {
		endOfDay := filters.Before.AddDate(0, 0, 1)
		b.Where("created_at < $%d", endOfDay)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transactions %s`, b.WhereClause())
	if err := s.DB.QueryRow(countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.Persistence("failed to count transactions", err)
	}

	query := fmt.Sprintf(`
		SELECT id, subtotal, money, refund, status, is_valid, cashier, customer_name, created_at
		FROM transactions
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		b.WhereClause(), sort.OrderClause(), b.NextPlaceholder(), b.NextPlaceholder()+1)

	args := append(b.Args(), page.Limit, page.Offset)
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, apperrors.Persistence("failed to list transactions", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Subtotal, &t.Money, &t.Refund, &t.Status, &t.IsValid, &t.Cashier, &t.CustomerName, &t.CreatedAt); err != nil {
			return nil, 0, apperrors.Persistence("failed to scan transaction", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Persistence("failed to iterate transactions", err)
	}

	return transactions, total, nil
}

// GetByID composes header + line items + payment into one detail.
func (s *OrderStore) GetByID(id uuid.UUID) (*models.TransactionDetail, error) {
	header, err := s.getHeader(id)
	if err != nil {
		return nil, err
	}

	items, err := s.ListItems(id)
	if err != nil {
		return nil, err
	}

	detail := models.TransactionDetail{
		Transaction: *header,
		Items:       items,
	}

	var p models.Payment
	err = s.DB.QueryRow(`
		SELECT id, transaction_id, method, amount, created_at
		FROM payments
		WHERE transaction_id = $1`, id).
		Scan(&p.ID, &p.TransactionID, &p.Method, &p.Amount, &p.CreatedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, apperrors.Persistence("failed to read payment", err)
	}
	if err == nil {
		detail.Payment = &p
	}

	return &detail, nil
}

func (s *OrderStore) ListItems(id uuid.UUID) ([]models.LineItem, error) {
	if _, err := s.getHeader(id); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT li.id, li.transaction_id, li.menu_item_id, m.name, li.quantity, li.price, li.subtotal
		FROM line_items li
		JOIN menu_items m ON m.id = li.menu_item_id
		WHERE li.transaction_id = $1
		ORDER BY li.id`, id)
	if err != nil {
		return nil, apperrors.Persistence("failed to list line items", err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var li models.LineItem
		if err := rows.Scan(&li.ID, &li.TransactionID, &li.MenuItemID, &li.MenuName, &li.Quantity, &li.Price, &li.Subtotal); err != nil {
			return nil, apperrors.Persistence("failed to scan line item", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("failed to iterate line items", err)
	}

	return items, nil
}

func (s *OrderStore) UpdateStatus(id uuid.UUID, status models.TransactionStatus) (*models.Transaction, error) {
	res, err := s.DB.Exec(`
		UPDATE transactions SET status = $1
		WHERE id = $2 AND is_valid`, status, id)
	if err != nil {
		return nil, apperrors.Persistence("failed to update transaction status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.NotFoundf("transaction %s not found", id)
	}
	return s.getHeader(id)
}

// Invalidate is the logical delete: the row stays for reporting history but
// drops out of listings, details and reports.
func (s *OrderStore) Invalidate(id uuid.UUID) error {
	res, err := s.DB.Exec(`
		UPDATE transactions SET is_valid = FALSE
		WHERE id = $1 AND is_valid`, id)
	if err != nil {
		return apperrors.Persistence("failed to invalidate transaction", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFoundf("transaction %s not found", id)
	}
	return nil
}
