package dbhelper

import (
	"database/sql"
	"fmt"

	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/listing"
	"github.com/ray-remotestate/resto-pos/models"
)

// MenuSortColumns is the allow-list for menu listing; anything else falls
// back to id ASC.
var MenuSortColumns = []string{"id", "name", "category", "price", "stock"}

type MenuFilters struct {
	Name     string
	Category string
	MinPrice float64
	MinStock int
}

type MenuStore struct {
	DB *sql.DB
}

func (s *MenuStore) Create(payload models.MenuItemPayload) (*models.MenuItem, error) {
	var id int64
	err := s.DB.QueryRow(`
		INSERT INTO menu_items (name, category, description, price, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		payload.Name, payload.Category, payload.Description, payload.Price, payload.Stock).Scan(&id)
	if err != nil {
		return nil, apperrors.Persistence("failed to create menu item", err)
	}
	return s.GetByID(id)
}

func (s *MenuStore) GetByID(id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.QueryRow(`
		SELECT id, name, category, description, price, stock, created_at
		FROM menu_items
		WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Category, &item.Description, &item.Price, &item.Stock, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("menu %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to read menu item", err)
	}
	return &item, nil
}

func (s *MenuStore) List(filters MenuFilters, sort listing.Sort, page listing.Page) ([]models.MenuItem, int, error) {
	var b listing.Builder
	if filters.Name != "" {
		b.Where("LOWER(name) LIKE LOWER($%d)", "%"+filters.Name+"%")
	}
	if filters.Category != "" {
		b.Where("LOWER(category) LIKE LOWER($%d)", "%"+filters.Category+"%")
	}
	if filters.MinPrice > 0 {
		b.Where("price >= $%d", filters.MinPrice)
	}
	if filters.MinStock > 0 {
		b.Where("stock >= $%d", filters.MinStock)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM menu_items %s`, b.WhereClause())
	if err := s.DB.QueryRow(countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.Persistence("failed to count menu items", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, category, description, price, stock, created_at
		FROM menu_items
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		b.WhereClause(), sort.OrderClause(), b.NextPlaceholder(), b.NextPlaceholder()+1)

	args := append(b.Args(), page.Limit, page.Offset)
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, apperrors.Persistence("failed to list menu items", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Description, &item.Price, &item.Stock, &item.CreatedAt); err != nil {
			return nil, 0, apperrors.Persistence("failed to scan menu item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Persistence("failed to iterate menu items", err)
	}

	return items, total, nil
}

func (s *MenuStore) Update(id int64, payload models.MenuItemPayload) (*models.MenuItem, error) {
	res, err := s.DB.Exec(`
		UPDATE menu_items
		SET name = $1, category = $2, description = $3, price = $4, stock = $5
		WHERE id = $6`,
		payload.Name, payload.Category, payload.Description, payload.Price, payload.Stock, id)
	if err != nil {
		return nil, apperrors.Persistence("failed to update menu item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.NotFoundf("menu %d not found", id)
	}
	return s.GetByID(id)
}

func (s *MenuStore) Delete(id int64) error {
	res, err := s.DB.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return apperrors.Persistence("failed to delete menu item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFoundf("menu %d not found", id)
	}
	return nil
}
