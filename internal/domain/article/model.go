// Package article provides the stocked-component catalog. An article is
// tracked per warehouse: the same article id may have one row per warehouse.
package article

import (
	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
)

// Article is one (article, warehouse) stock row.
type Article struct {
	// ID identifies the article across all warehouses.
	ID id.ID `db:"id" json:"id"`

	// WarehouseID identifies the warehouse holding this row's stock.
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	Name string `db:"name" json:"name"`

	// Stock is the sellable unit count.
	Stock int64 `db:"stock" json:"stock"`

	// DamagedStock is counted separately and never sold.
	DamagedStock int64 `db:"damaged_stock" json:"damagedStock"`
}

// Key identifies an article row uniquely.
type Key struct {
	ArticleID   id.ID
	WarehouseID id.ID
}

// Key returns the (article, warehouse) identity of the row.
func (a Article) Key() Key {
	return Key{ArticleID: a.ID, WarehouseID: a.WarehouseID}
}

// Validate checks the invariants the bulk loader relies on.
func (a Article) Validate() error {
	if id.IsNil(a.ID) {
		return apperror.NewValidation("article id is required")
	}
	if id.IsNil(a.WarehouseID) {
		return apperror.NewValidation("warehouse id is required")
	}
	if a.Name == "" {
		return apperror.NewValidation("article name is required")
	}
	if a.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}
	if a.DamagedStock < 0 {
		return apperror.NewValidation("damaged stock cannot be negative").
			WithDetail("field", "damagedStock")
	}
	return nil
}
