package product

import (
	"context"

	"stockyard/internal/core/id"
)

// Cursor is an opaque continuation token for resuming a paged product scan.
// Empty means "start from the beginning".
type Cursor string

// ScanPage is one bounded page of a product scan.
type ScanPage struct {
	Records []Product

	// NextCursor resumes the scan after this page. Empty when the scan is
	// exhausted.
	NextCursor Cursor
}

// Repository defines persistence operations for products.
type Repository interface {
	// GetByID returns the product. Returns apperror NOT_FOUND when absent.
	GetByID(ctx context.Context, productID id.ID) (Product, error)

	// Upsert creates or fully replaces the product definition.
	Upsert(ctx context.Context, p Product) error

	// Scan returns one fixed-size page of products starting after cursor.
	Scan(ctx context.Context, cursor Cursor) (ScanPage, error)
}
