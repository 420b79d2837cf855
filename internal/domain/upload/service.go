package upload

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"

	"stockyard/internal/core/apperror"
	"stockyard/internal/domain/article"
	"stockyard/internal/domain/product"
	"stockyard/pkg/logger"
)

var tracer = otel.Tracer("stockyard/upload")

// Upload folders recognized in object keys. The first path segment of the
// uploaded file's key selects the record kind.
const (
	FolderArticles = "articles"
	FolderProducts = "products"
)

// FileStore moves bulk files in and out of object storage.
type FileStore interface {
	// Download fetches and decompresses the uploaded batch file.
	Download(ctx context.Context, key string) ([]byte, error)

	// UploadFailedRecords writes the failed set as a side-channel artifact
	// under errors/<kind>/.
	UploadFailedRecords(ctx context.Context, kind string, records []FailedRecord) error
}

// Service drives the bulk upload pipeline for a notification event.
type Service struct {
	articles article.Repository
	products product.Repository
	files    FileStore
}

// NewService creates a new upload service.
func NewService(articles article.Repository, products product.Repository, files FileStore) *Service {
	return &Service{
		articles: articles,
		products: products,
		files:    files,
	}
}

// HandleNotification processes one upload event. Envelope-level problems
// (unknown folder, malformed file) fail the call; individual record failures
// are collected and reported as an artifact instead.
func (s *Service) HandleNotification(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "upload.handle_notification")
	defer span.End()

	folder, _, _ := strings.Cut(key, "/")

	payload, err := s.files.Download(ctx, key)
	if err != nil {
		logger.Error(ctx, "failed to download uploaded file", "key", key, "error", err)
		return err
	}
	logger.Info(ctx, "downloaded uploaded file", "key", key, "bytes", len(payload))

	switch folder {
	case FolderArticles:
		return s.uploadArticles(ctx, payload)
	case FolderProducts:
		return s.uploadProducts(ctx, payload)
	default:
		return apperror.NewInvalidEnvelope("file uploaded to unrecognized folder").
			WithDetail("key", key)
	}
}

func (s *Service) uploadArticles(ctx context.Context, payload []byte) error {
	accepted, failed, err := ReconcileArticles(payload)
	if err != nil {
		return err
	}

	if len(accepted) == 0 {
		logger.Warn(ctx, "found no valid article records in file")
	}

	// Persist all accepted records independently; one failure must not block
	// the others.
	errs := make([]error, len(accepted))
	settleAll(len(accepted), func(i int) {
		errs[i] = s.articles.Upsert(ctx, accepted[i])
	})

	for i, persistErr := range errs {
		if persistErr == nil {
			continue
		}
		reason := failureReason(persistErr)
		logger.Warn(ctx, "article record failed to persist",
			"article_id", accepted[i].ID,
			"warehouse_id", accepted[i].WarehouseID,
			"reason", reason,
		)
		failed = append(failed, FailedRecord{Record: accepted[i], Reason: reason})
	}

	return s.reportFailures(ctx, FolderArticles, failed)
}

func (s *Service) uploadProducts(ctx context.Context, payload []byte) error {
	accepted, failed, err := ReconcileProducts(payload)
	if err != nil {
		return err
	}

	if len(accepted) == 0 {
		logger.Warn(ctx, "found no valid product records in file")
	}

	errs := make([]error, len(accepted))
	settleAll(len(accepted), func(i int) {
		errs[i] = s.products.Upsert(ctx, accepted[i])
	})

	for i, persistErr := range errs {
		if persistErr == nil {
			continue
		}
		reason := failureReason(persistErr)
		logger.Warn(ctx, "product record failed to persist",
			"product_id", accepted[i].ID,
			"reason", reason,
		)
		failed = append(failed, FailedRecord{Record: accepted[i], Reason: reason})
	}

	return s.reportFailures(ctx, FolderProducts, failed)
}

// reportFailures uploads the failed set as an artifact, or skips the step when
// everything went through.
func (s *Service) reportFailures(ctx context.Context, kind string, failed []FailedRecord) error {
	if len(failed) == 0 {
		logger.Info(ctx, "no failed records in file", "kind", kind)
		return nil
	}

	logger.Info(ctx, "uploading failed records", "kind", kind, "count", len(failed))
	return s.files.UploadFailedRecords(ctx, kind, failed)
}

// settleAll runs fn for every index concurrently and waits for all of them.
// Unlike an errgroup there is no fail-fast: every item gets its attempt.
func settleAll(n int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			fn(i)
		}()
	}
	wg.Wait()
}
