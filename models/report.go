package models

type TopMenuRow struct {
	MenuItemID    int64    `db:"id" json:"id_menu"`
	Name          string   `db:"name" json:"name"`
	Category      Category `db:"category" json:"category"`
	TotalQuantity int64    `db:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64  `db:"total_revenue" json:"total_revenue"`
}

type DailyRevenueRow struct {
	Date    string  `db:"report_date" json:"date"`
	Revenue float64 `db:"revenue" json:"revenue"`
}
