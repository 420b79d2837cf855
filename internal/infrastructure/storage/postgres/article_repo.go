package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/article"
)

const articlesTable = "articles"

// ArticleRepo implements article.Repository.
type ArticleRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewArticleRepo creates a new article repository.
func NewArticleRepo(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByArticle returns every warehouse row for an article id.
func (r *ArticleRepo) ListByArticle(ctx context.Context, articleID id.ID) ([]article.Article, error) {
	q := r.builder.Select(
		"id", "warehouse_id", "name", "stock", "damaged_stock",
	).From(articlesTable).
		Where(squirrel.Eq{"id": articleID}).
		OrderBy("warehouse_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []article.Article
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select article rows: %w", err)
	}

	return rows, nil
}

// Get returns a single (article, warehouse) row.
func (r *ArticleRepo) Get(ctx context.Context, articleID, warehouseID id.ID) (article.Article, error) {
	var row article.Article

	q := r.builder.Select(
		"id", "warehouse_id", "name", "stock", "damaged_stock",
	).From(articlesTable).
		Where(squirrel.Eq{
			"id":           articleID,
			"warehouse_id": warehouseID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return row, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.pool, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return row, apperror.NewNotFound("article", articleID)
		}
		return row, fmt.Errorf("get article row: %w", err)
	}

	return row, nil
}

// Upsert creates the row or accumulates stock onto an existing one.
func (r *ArticleRepo) Upsert(ctx context.Context, a article.Article) error {
	q := r.builder.Insert(articlesTable).
		Columns("id", "warehouse_id", "name", "stock", "damaged_stock", "updated_at").
		Values(a.ID, a.WarehouseID, a.Name, a.Stock, a.DamagedStock, time.Now().UTC()).
		Suffix(`ON CONFLICT (id, warehouse_id) DO UPDATE SET
			name = EXCLUDED.name,
			stock = articles.stock + EXCLUDED.stock,
			damaged_stock = articles.damaged_stock + EXCLUDED.damaged_stock,
			updated_at = EXCLUDED.updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return apperror.NewPersistence(err).
			WithDetail("article_id", a.ID).
			WithDetail("warehouse_id", a.WarehouseID)
	}

	return nil
}

// DecrementStock subtracts amount from a row's stock, conditional on the row
// existing.
func (r *ArticleRepo) DecrementStock(ctx context.Context, articleID, warehouseID id.ID, amount int64) error {
	q := r.builder.Update(articlesTable).
		Set("stock", squirrel.Expr("stock - ?", amount)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{
			"id":           articleID,
			"warehouse_id": warehouseID,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("article", articleID).
			WithDetail("warehouse_id", warehouseID)
	}

	return nil
}

// Ensure interface compliance.
var _ article.Repository = (*ArticleRepo)(nil)
