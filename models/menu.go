package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

type Category string

const (
	CategoryFood    Category = "Food"
	CategoryDrink   Category = "Drink"
	CategoryDessert Category = "Dessert"
)

func (c Category) IsValid() bool {
	return c == CategoryFood || c == CategoryDrink || c == CategoryDessert
}

const maxDescriptionLength = 255

type MenuItem struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    Category  `db:"category" json:"category"`
	Description *string   `db:"description" json:"description,omitempty"`
	Price       float64   `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type MenuItemPayload struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
}

// Validate collects every field problem so the client sees them all at once.
func (p *MenuItemPayload) Validate() error {
	var errs *multierror.Error

	if strings.TrimSpace(p.Name) == "" {
		errs = multierror.Append(errs, fmt.Errorf("name is required"))
	}
	if !p.Category.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("category must be one of Food, Drink, Dessert"))
	}
	if p.Description != nil && len(*p.Description) > maxDescriptionLength {
		errs = multierror.Append(errs, fmt.Errorf("description must be at most %d characters", maxDescriptionLength))
	}
	if p.Price < 0 {
		errs = multierror.Append(errs, fmt.Errorf("price must not be negative"))
	}
	if p.Stock < 0 {
		errs = multierror.Append(errs, fmt.Errorf("stock must not be negative"))
	}

	return errs.ErrorOrNil()
}
