package dbhelper

import (
	"database/sql"
	"time"

	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/models"
)

type ReportStore struct {
	DB *sql.DB
}

// TopMenuItems ranks menu items by quantity sold over completed, valid
// transactions inside [start, end], inclusive of the whole end date.
func (s *ReportStore) TopMenuItems(start, end time.Time, limit int) ([]models.TopMenuRow, error) {
	rows, err := s.DB.Query(`
		SELECT m.id, m.name, m.category, SUM(li.quantity) AS total_quantity, SUM(li.subtotal) AS total_revenue
		FROM line_items li
		JOIN transactions t ON t.id = li.transaction_id
		JOIN menu_items m ON m.id = li.menu_item_id
		WHERE t.is_valid
			AND t.status = $1
			AND t.created_at >= $2
			AND t.created_at < $3
		GROUP BY m.id, m.name, m.category
		ORDER BY total_quantity DESC
		LIMIT $4`,
		models.StatusCompleted, start, end.AddDate(0, 0, 1), limit)
	if err != nil {
		return nil, apperrors.Persistence("failed to query top menu items", err)
	}
	defer rows.Close()

	var report []models.TopMenuRow
	for rows.Next() {
		var row models.TopMenuRow
		if err := rows.Scan(&row.MenuItemID, &row.Name, &row.Category, &row.TotalQuantity, &row.TotalRevenue); err != nil {
			return nil, apperrors.Persistence("failed to scan top menu row", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("failed to iterate top menu rows", err)
	}

	return report, nil
}

// DailyRevenue sums completed, valid transaction subtotals per calendar day,
// ordered chronologically.
func (s *ReportStore) DailyRevenue(start, end time.Time) ([]models.DailyRevenueRow, error) {
	rows, err := s.DB.Query(`
		SELECT TO_CHAR(t.created_at, 'YYYY-MM-DD') AS report_date, SUM(t.subtotal) AS revenue
		FROM transactions t
		WHERE t.is_valid
			AND t.status = $1
			AND t.created_at >= $2
			AND t.created_at < $3
		GROUP BY TO_CHAR(t.created_at, 'YYYY-MM-DD')
		ORDER BY report_date`,
		models.StatusCompleted, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.Persistence("failed to query daily revenue", err)
	}
	defer rows.Close()

	var report []models.DailyRevenueRow
	for rows.Next() {
		var row models.DailyRevenueRow
		if err := rows.Scan(&row.Date, &row.Revenue); err != nil {
			return nil, apperrors.Persistence("failed to scan revenue row", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("failed to iterate revenue rows", err)
	}

	return report, nil
}
