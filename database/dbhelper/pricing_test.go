package dbhelper

import (
	"testing"

	"github.com/ray-remotestate/resto-pos/apperrors"
	"github.com/ray-remotestate/resto-pos/models"
)

func TestPriceLine(t *testing.T) {
	item := models.MenuItem{ID: 1, Name: "Es Teh", Price: 20000, Stock: 5}

	line, err := priceLine(&item, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Subtotal != 40000 {
		t.Errorf("subtotal = %v, want 40000", line.Subtotal)
	}
	if line.Price != 20000 {
		t.Errorf("price snapshot = %v, want 20000", line.Price)
	}

	if _, err := priceLine(&item, 6); err == nil {
		t.Fatal("expected insufficient stock error")
	} else if apperrors.From(err).Kind != apperrors.KindConflict {
		t.Errorf("wrong kind: %v", err)
	}

	// quantity equal to stock is allowed
	if _, err := priceLine(&item, 5); err != nil {
		t.Errorf("quantity == stock should pass, got %v", err)
	}
}

func TestOrderTotals(t *testing.T) {
	lines := []models.LineItem{
		{Subtotal: 40000},
		{Subtotal: 15000},
	}

	subtotal, refund, err := orderTotals(lines, 60000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subtotal != 55000 || refund != 5000 {
		t.Errorf("got subtotal=%v refund=%v", subtotal, refund)
	}

	// worked example: one line of 2 x 20000 with 50000 tendered
	subtotal, refund, err = orderTotals([]models.LineItem{{Subtotal: 40000}}, 50000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subtotal != 40000 || refund != 10000 {
		t.Errorf("got subtotal=%v refund=%v, want 40000/10000", subtotal, refund)
	}

	// exact payment leaves no refund
	if _, refund, err = orderTotals(lines, 55000); err != nil || refund != 0 {
		t.Errorf("exact payment: refund=%v err=%v", refund, err)
	}

	if _, _, err := orderTotals(lines, 54999); err == nil {
		t.Fatal("expected insufficient payment error")
	} else if apperrors.From(err).Kind != apperrors.KindConflict {
		t.Errorf("wrong kind: %v", err)
	}
}
