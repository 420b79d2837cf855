package postgres

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/product"
)

const productsTable = "products"

// scanPageSize is the fixed bound for catalog scans.
const scanPageSize = 12

// ProductRepo implements product.Repository. Scans use keyset pagination
// ordered by id; the cursor is the base64url-encoded id of the last row of
// the previous page, opaque to callers.
type ProductRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// productRow is the storage shape; components are kept as a jsonb document.
type productRow struct {
	ID             id.ID  `db:"id"`
	Name           string `db:"name"`
	Components     []byte `db:"components"`
	AssemblyTimeMs int64  `db:"assembly_time_ms"`
}

func (row productRow) toDomain() (product.Product, error) {
	p := product.Product{
		ID:             row.ID,
		Name:           row.Name,
		AssemblyTimeMs: row.AssemblyTimeMs,
	}
	if err := json.Unmarshal(row.Components, &p.Components); err != nil {
		return product.Product{}, fmt.Errorf("decode components for product %s: %w", row.ID, err)
	}
	return p, nil
}

// GetByID returns the product or NOT_FOUND.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (product.Product, error) {
	q := r.builder.Select(
		"id", "name", "components", "assembly_time_ms",
	).From(productsTable).
		Where(squirrel.Eq{"id": productID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("build query: %w", err)
	}

	var row productRow
	if err := pgxscan.Get(ctx, r.pool, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return product.Product{}, apperror.NewNotFound("product", productID)
		}
		return product.Product{}, fmt.Errorf("get product: %w", err)
	}

	return row.toDomain()
}

// Upsert creates or fully replaces the product definition.
func (r *ProductRepo) Upsert(ctx context.Context, p product.Product) error {
	components, err := json.Marshal(p.Components)
	if err != nil {
		return fmt.Errorf("encode components: %w", err)
	}

	q := r.builder.Insert(productsTable).
		Columns("id", "name", "components", "assembly_time_ms", "updated_at").
		Values(p.ID, p.Name, components, p.AssemblyTimeMs, time.Now().UTC()).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			components = EXCLUDED.components,
			assembly_time_ms = EXCLUDED.assembly_time_ms,
			updated_at = EXCLUDED.updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return apperror.NewPersistence(err).WithDetail("product_id", p.ID)
	}

	return nil
}

// Scan returns one page of products starting after cursor.
func (r *ProductRepo) Scan(ctx context.Context, cursor product.Cursor) (product.ScanPage, error) {
	q := r.builder.Select(
		"id", "name", "components", "assembly_time_ms",
	).From(productsTable).
		OrderBy("id").
		Limit(scanPageSize)

	if cursor != "" {
		afterID, err := decodeCursor(cursor)
		if err != nil {
			return product.ScanPage{}, err
		}
		q = q.Where(squirrel.Gt{"id": afterID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return product.ScanPage{}, fmt.Errorf("build scan: %w", err)
	}

	var rows []productRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return product.ScanPage{}, fmt.Errorf("scan products: %w", err)
	}

	page := product.ScanPage{
		Records: make([]product.Product, 0, len(rows)),
	}
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return product.ScanPage{}, err
		}
		page.Records = append(page.Records, p)
	}

	// A full page may have more rows behind it; a short page is the end.
	if len(rows) == scanPageSize {
		page.NextCursor = encodeCursor(rows[len(rows)-1].ID)
	}

	return page, nil
}

func encodeCursor(lastID id.ID) product.Cursor {
	return product.Cursor(base64.RawURLEncoding.EncodeToString([]byte(lastID.String())))
}

func decodeCursor(cursor product.Cursor) (id.ID, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(string(cursor))
	if err != nil {
		return id.Nil(), apperror.NewValidation("malformed scan cursor").WithCause(err)
	}
	parsed, err := id.Parse(string(decoded))
	if err != nil {
		return id.Nil(), apperror.NewValidation("malformed scan cursor").WithCause(err)
	}
	return parsed, nil
}

// Ensure interface compliance.
var _ product.Repository = (*ProductRepo)(nil)
