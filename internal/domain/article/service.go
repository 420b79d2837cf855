package article

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/availability"
	"stockyard/pkg/logger"
)

var tracer = otel.Tracer("stockyard/article")

// AvailabilityService folds per-warehouse article rows into per-article
// availability summaries. It is a pure read path with no side effects.
type AvailabilityService struct {
	repo Repository
}

// NewAvailabilityService creates a new article availability service.
func NewAvailabilityService(repo Repository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// Resolve reads every warehouse row for the article and folds them:
// universal availability is the stock sum, best warehouse the stock max.
// Fails with NOT_FOUND when no row exists for the id.
func (s *AvailabilityService) Resolve(ctx context.Context, articleID id.ID) (availability.Summary, error) {
	ctx, span := tracer.Start(ctx, "article.resolve")
	defer span.End()

	rows, err := s.repo.ListByArticle(ctx, articleID)
	if err != nil {
		return availability.Summary{}, fmt.Errorf("list article rows: %w", err)
	}
	if len(rows) == 0 {
		logger.Warn(ctx, "no article rows found", "article_id", articleID)
		return availability.Summary{}, apperror.NewNotFound("article", articleID)
	}

	summary := availability.Summary{
		PerWarehouse: make(map[id.ID]int64, len(rows)),
	}
	for _, row := range rows {
		summary.Universal += row.Stock
		summary.PerWarehouse[row.WarehouseID] = row.Stock
		summary.BestWarehouse = max(summary.BestWarehouse, row.Stock)
	}

	return summary, nil
}

// ResolveSet resolves all ids independently and concurrently. Any single
// failure fails the whole call; there are no partial results on this path.
func (s *AvailabilityService) ResolveSet(ctx context.Context, articleIDs []id.ID) (map[id.ID]availability.Summary, error) {
	ctx, span := tracer.Start(ctx, "article.resolve_set")
	defer span.End()

	var (
		mu        sync.Mutex
		summaries = make(map[id.ID]availability.Summary, len(articleIDs))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, articleID := range articleIDs {
		g.Go(func() error {
			summary, err := s.Resolve(ctx, articleID)
			if err != nil {
				return err
			}
			mu.Lock()
			summaries[articleID] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}
