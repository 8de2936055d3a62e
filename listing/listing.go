// Package listing builds the filtered, sorted, paginated portion of the
// menu and transaction list queries. Filter values are always bound as
// parameters; only allow-listed column names ever reach the query text.
package listing

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	MaxLimit     = 100
	defaultOrder = "ASC"
)

// Builder accumulates parameterized predicates. Conditions are given with a
// $%d verb for their placeholder, e.g. Where("price >= $%d", minPrice).
type Builder struct {
	conds []string
	args  []interface{}
}

func (b *Builder) Where(cond string, args ...interface{}) {
	placeholders := make([]interface{}, 0, len(args))
	for range args {
		placeholders = append(placeholders, len(b.args)+len(placeholders)+1)
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholders...))
	b.args = append(b.args, args...)
}

// WhereClause returns "WHERE ..." or an empty string when no filter is set.
func (b *Builder) WhereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

func (b *Builder) Args() []interface{} {
	return b.args
}

// NextPlaceholder is the positional index the next bound argument would get,
// for appending LIMIT/OFFSET binds after the predicates.
func (b *Builder) NextPlaceholder() int {
	return len(b.args) + 1
}

type Sort struct {
	Column    string
	Direction string
}

// SortFromQuery validates sortBy/sortOrder against the resource allow-list.
// Anything not on the list silently falls back to the default, matching the
// listing contract: bad sort input is ignored, never an error.
func SortFromQuery(sortBy, sortOrder string, allowed []string, defaultColumn string) Sort {
	s := Sort{Column: defaultColumn, Direction: defaultOrder}
	for _, col := range allowed {
		if sortBy == col {
			s.Column = col
			break
		}
	}
	switch strings.ToUpper(sortOrder) {
	case "ASC", "DESC":
		s.Direction = strings.ToUpper(sortOrder)
	}
	return s
}

// OrderClause splices the column and direction as raw text. Both come off the
// allow-list, never from the client verbatim.
func (s Sort) OrderClause() string {
	return fmt.Sprintf("ORDER BY %s %s", s.Column, s.Direction)
}

type Page struct {
	Number int
	Limit  int
	Offset int
}

// PageFromQuery clamps page and limit to sane values; invalid or missing
// input falls back to page 1 and the resource default limit.
func PageFromQuery(pageStr, limitStr string, defaultLimit int) Page {
	page := DefaultPage
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		page = n
	}

	limit := defaultLimit
	if n, err := strconv.Atoi(limitStr); err == nil && n >= 1 {
		limit = n
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Page{
		Number: page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

type Meta struct {
	Page         int  `json:"page"`
	Limit        int  `json:"limit"`
	TotalRecords int  `json:"totalRecords"`
	TotalPages   int  `json:"totalPages"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

func BuildMeta(p Page, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:         p.Number,
		Limit:        p.Limit,
		TotalRecords: total,
		TotalPages:   totalPages,
		HasNextPage:  p.Number < totalPages,
		HasPrevPage:  p.Number > 1,
	}
}
