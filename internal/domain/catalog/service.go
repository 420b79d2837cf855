package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/availability"
	"stockyard/internal/domain/product"
	"stockyard/pkg/logger"
)

// Scanner performs bounded product scans.
type Scanner interface {
	Scan(ctx context.Context, cursor product.Cursor) (product.ScanPage, error)
}

// AvailabilityProvider computes (or serves cached) product availability.
type AvailabilityProvider interface {
	GetAvailability(ctx context.Context, productID id.ID) (availability.Summary, error)
}

// Item is one catalog entry with its availability attached.
type Item struct {
	product.Product
	Availability availability.Summary `json:"availability"`
}

// ListResult is one catalog page.
type ListResult struct {
	Records  []Item `json:"records"`
	LastPage bool   `json:"lastPage"`
}

// Service serves catalog pages, consulting the cursor cache before storage.
type Service struct {
	scanner Scanner
	avail   AvailabilityProvider
	cursors *CursorCache
}

// NewService creates a new catalog service.
func NewService(scanner Scanner, avail AvailabilityProvider, cursors *CursorCache) *Service {
	return &Service{
		scanner: scanner,
		avail:   avail,
		cursors: cursors,
	}
}

// List returns one catalog page for the identity. The requested page is
// clamped so an identity cannot skip ahead of pages it has not discovered;
// a page whose cursor has been scanned before (by any identity) is served
// from cache without touching storage.
func (s *Service) List(ctx context.Context, identity string, requestedPage int) (ListResult, error) {
	page, cursor := s.cursors.ResolvePage(identity, requestedPage)

	logger.Debug(ctx, "listing catalog page",
		"identity", identity,
		"requested_page", requestedPage,
		"page", page,
	)

	entry, cached := s.cursors.GetPage(cursor)
	if !cached {
		scanned, err := s.scanner.Scan(ctx, cursor)
		if err != nil {
			logger.Error(ctx, "product scan failed", "error", err)
			return ListResult{}, fmt.Errorf("scan products: %w", err)
		}

		entry = Page{
			Records:  scanned.Records,
			LastPage: scanned.NextCursor == "",
		}
		s.cursors.CommitScan(identity, page, cursor, entry, scanned.NextCursor)
	}

	items := make([]Item, len(entry.Records))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range entry.Records {
		g.Go(func() error {
			summary, err := s.avail.GetAvailability(gctx, p.ID)
			if err != nil {
				return err
			}
			items[i] = Item{Product: p, Availability: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Records:  items,
		LastPage: entry.LastPage,
	}, nil
}
