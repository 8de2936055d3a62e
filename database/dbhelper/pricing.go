package dbhelper

import (
	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/models"
)

// priceLine snapshots the current catalog price onto a line item. Stock is
// checked here informationally; the conditional decrement during commit is
// what actually reserves it.
func priceLine(item *models.MenuItem, quantity int) (models.LineItem, error) {
	if quantity > item.Stock {
		return models.LineItem{}, apperrors.Conflictf("insufficient stock for %s", item.Name)
	}
	return models.LineItem{
		MenuItemID: item.ID,
		MenuName:   item.Name,
		Quantity:   quantity,
		Price:      item.Price,
		Subtotal:   item.Price * float64(quantity),
	}, nil
}

// orderTotals derives the header amounts from priced lines and rejects
// tenders short of the total, so refund can never go negative.
func orderTotals(lines []models.LineItem, money float64) (subtotal, refund float64, err error) {
	for _, line := range lines {
		subtotal += line.Subtotal
	}
	if money < subtotal {
		return 0, 0, apperrors.Conflictf("insufficient payment: total is %.2f", subtotal)
	}
	return subtotal, money - subtotal, nil
}
