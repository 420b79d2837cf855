package product

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/article"
	"stockyard/internal/domain/availability"
	"stockyard/pkg/logger"
)

var tracer = otel.Tracer("stockyard/product")

// Service answers "how many of product P can I build right now" and performs
// the sell transaction.
type Service struct {
	products     Repository
	articles     article.Repository
	articleAvail *article.AvailabilityService
	cache        *availability.Cache
}

// NewService creates a new product service.
func NewService(
	products Repository,
	articles article.Repository,
	articleAvail *article.AvailabilityService,
	cache *availability.Cache,
) *Service {
	return &Service{
		products:     products,
		articles:     articles,
		articleAvail: articleAvail,
		cache:        cache,
	}
}

// GetAvailability returns the product's availability summary, served from the
// memo cache when present. Cached values can be stale after a sell; the cache
// has no active invalidation.
func (s *Service) GetAvailability(ctx context.Context, productID id.ID) (availability.Summary, error) {
	if cached, ok := s.cache.Get(productID); ok {
		return cached, nil
	}

	ctx, span := tracer.Start(ctx, "product.availability")
	defer span.End()

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return availability.Summary{}, err
	}

	logger.Debug(ctx, "resolving article availability", "product_id", productID)
	perArticle, err := s.articleAvail.ResolveSet(ctx, p.ArticleIDs())
	if err != nil {
		return availability.Summary{}, fmt.Errorf("resolve article set for product %s: %w", productID, err)
	}

	summary := availability.Aggregate(p.Components, perArticle)
	s.cache.Put(productID, summary)

	return summary, nil
}

// Sell decrements stock for one unit of the product at the given warehouse.
//
// The availability gate runs before any decrement is issued. The decrements
// themselves run concurrently and are not one atomic multi-row transaction,
// so a failure after the gate can leave some components decremented.
func (s *Service) Sell(ctx context.Context, productID, warehouseID id.ID) error {
	ctx, span := tracer.Start(ctx, "product.sell")
	defer span.End()

	logger.Info(ctx, "starting sell", "product_id", productID, "warehouse_id", warehouseID)

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	summary, err := s.GetAvailability(ctx, productID)
	if err != nil {
		return err
	}

	if summary.PerWarehouse[warehouseID] <= 0 {
		return apperror.NewUnavailable(productID, warehouseID)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, component := range p.Components {
		g.Go(func() error {
			return s.articles.DecrementStock(ctx, component.ArticleID, warehouseID, component.RequiredAmount)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("decrement stock for product %s: %w", productID, err)
	}

	logger.Info(ctx, "finished sell", "product_id", productID, "warehouse_id", warehouseID)
	return nil
}
