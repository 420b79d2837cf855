package article

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
)

// fakeRepo serves canned rows per article id.
type fakeRepo struct {
	rows  map[id.ID][]Article
	err   error
	calls atomic.Int64
}

func (f *fakeRepo) ListByArticle(_ context.Context, articleID id.ID) ([]Article, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[articleID], nil
}

func (f *fakeRepo) Get(context.Context, id.ID, id.ID) (Article, error) {
	return Article{}, errors.New("not implemented")
}

func (f *fakeRepo) Upsert(context.Context, Article) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) DecrementStock(context.Context, id.ID, id.ID, int64) error {
	return errors.New("not implemented")
}

func TestResolve(t *testing.T) {
	articleID := id.New()
	warehouseA := id.New()
	warehouseB := id.New()

	t.Run("folds warehouse rows into a summary", func(t *testing.T) {
		repo := &fakeRepo{rows: map[id.ID][]Article{
			articleID: {
				{ID: articleID, WarehouseID: warehouseA, Name: "leg", Stock: 12},
				{ID: articleID, WarehouseID: warehouseB, Name: "leg", Stock: 30},
			},
		}}
		svc := NewAvailabilityService(repo)

		summary, err := svc.Resolve(context.Background(), articleID)

		require.NoError(t, err)
		assert.Equal(t, int64(42), summary.Universal)
		assert.Equal(t, int64(30), summary.BestWarehouse)
		assert.Equal(t, int64(12), summary.PerWarehouse[warehouseA])
		assert.Equal(t, int64(30), summary.PerWarehouse[warehouseB])
	})

	t.Run("unknown article is not found", func(t *testing.T) {
		svc := NewAvailabilityService(&fakeRepo{})

		_, err := svc.Resolve(context.Background(), id.New())

		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		svc := NewAvailabilityService(&fakeRepo{err: errors.New("connection reset")})

		_, err := svc.Resolve(context.Background(), articleID)

		require.Error(t, err)
		assert.False(t, apperror.IsNotFound(err))
	})
}

func TestResolveSet(t *testing.T) {
	first := id.New()
	second := id.New()
	warehouse := id.New()

	t.Run("resolves every id", func(t *testing.T) {
		repo := &fakeRepo{rows: map[id.ID][]Article{
			first:  {{ID: first, WarehouseID: warehouse, Name: "leg", Stock: 4}},
			second: {{ID: second, WarehouseID: warehouse, Name: "screw", Stock: 9}},
		}}
		svc := NewAvailabilityService(repo)

		summaries, err := svc.ResolveSet(context.Background(), []id.ID{first, second})

		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, int64(4), summaries[first].Universal)
		assert.Equal(t, int64(9), summaries[second].Universal)
	})

	t.Run("one missing article fails the whole set", func(t *testing.T) {
		repo := &fakeRepo{rows: map[id.ID][]Article{
			first: {{ID: first, WarehouseID: warehouse, Name: "leg", Stock: 4}},
		}}
		svc := NewAvailabilityService(repo)

		summaries, err := svc.ResolveSet(context.Background(), []id.ID{first, second})

		assert.True(t, apperror.IsNotFound(err))
		assert.Nil(t, summaries)
	})

	t.Run("empty set resolves to empty map", func(t *testing.T) {
		svc := NewAvailabilityService(&fakeRepo{})

		summaries, err := svc.ResolveSet(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}
