// Package models provides data model definitions for the inventory core.
package models

import (
	"github.com/kimhsiao/inventory/internal/date"
)

// Product is a single inventory record. Name is the natural key, unique
// across the store; ID is assigned by the store on first insert and is
// ascending by creation order.
type Product struct {
	ID       int64  `db:"product_id"`
	Name     string `db:"product_name"`
	Quantity int64  `db:"product_quantity"`
	// Price is an integer number of minor currency units (cents),
	// never a float.
	Price     int64     `db:"product_price"`
	UpdatedAt date.Date `db:"date_updated"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}
