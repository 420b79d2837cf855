package article

import (
	"context"

	"stockyard/internal/core/id"
)

// Repository defines persistence operations for article rows.
type Repository interface {
	// ListByArticle returns every warehouse row for an article id.
	// An unknown id yields an empty slice, not an error.
	ListByArticle(ctx context.Context, articleID id.ID) ([]Article, error)

	// Get returns a single (article, warehouse) row.
	// Returns apperror NOT_FOUND when the row does not exist.
	Get(ctx context.Context, articleID, warehouseID id.ID) (Article, error)

	// Upsert creates the row or accumulates stock and damaged stock onto an
	// existing one (multiple deliveries of the same SKU add up).
	Upsert(ctx context.Context, a Article) error

	// DecrementStock subtracts amount from the row's stock. Fails with
	// NOT_FOUND when the row does not exist; the decrement is conditional on
	// the row, not on the resulting value.
	DecrementStock(ctx context.Context, articleID, warehouseID id.ID, amount int64) error
}
