package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/id"
)

var (
	articleLeg   = id.MustParse("11111111-1111-1111-1111-111111111111")
	articleScrew = id.MustParse("22222222-2222-2222-2222-222222222222")
	articleSeat  = id.MustParse("33333333-3333-3333-3333-333333333333")

	warehouseNorth = id.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	warehouseSouth = id.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
)

func TestAggregate(t *testing.T) {
	t.Run("single component divides stock by required amount", func(t *testing.T) {
		components := []Component{
			{ArticleID: articleLeg, RequiredAmount: 4},
		}
		perArticle := map[id.ID]Summary{
			articleLeg: {
				Universal:     41,
				BestWarehouse: 25,
				PerWarehouse: map[id.ID]int64{
					warehouseNorth: 25,
					warehouseSouth: 16,
				},
			},
		}

		result := Aggregate(components, perArticle)

		assert.Equal(t, int64(10), result.Universal)
		assert.Equal(t, int64(6), result.BestWarehouse)
		assert.Equal(t, map[id.ID]int64{
			warehouseNorth: 6,
			warehouseSouth: 4,
		}, result.PerWarehouse)
	})

	t.Run("limiting component bounds the whole product", func(t *testing.T) {
		components := []Component{
			{ArticleID: articleLeg, RequiredAmount: 4},
			{ArticleID: articleScrew, RequiredAmount: 8},
			{ArticleID: articleSeat, RequiredAmount: 1},
		}
		perArticle := map[id.ID]Summary{
			articleLeg: {
				Universal:    40,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 40},
			},
			articleScrew: {
				Universal:    64,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 64},
			},
			articleSeat: {
				Universal:    3,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 3},
			},
		}

		result := Aggregate(components, perArticle)

		// min(40/4, 64/8, 3/1)
		assert.Equal(t, int64(3), result.Universal)
		assert.Equal(t, int64(3), result.BestWarehouse)
		assert.Equal(t, int64(3), result.PerWarehouse[warehouseNorth])
	})

	t.Run("warehouse missing a component is dropped", func(t *testing.T) {
		components := []Component{
			{ArticleID: articleLeg, RequiredAmount: 1},
			{ArticleID: articleSeat, RequiredAmount: 1},
		}
		perArticle := map[id.ID]Summary{
			articleLeg: {
				Universal: 30,
				PerWarehouse: map[id.ID]int64{
					warehouseNorth: 20,
					warehouseSouth: 10,
				},
			},
			articleSeat: {
				Universal:    5,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 5},
			},
		}

		result := Aggregate(components, perArticle)

		assert.NotContains(t, result.PerWarehouse, warehouseSouth)
		assert.Equal(t, int64(5), result.PerWarehouse[warehouseNorth])
		assert.Equal(t, int64(5), result.BestWarehouse)
		assert.Equal(t, int64(5), result.Universal)
	})

	t.Run("disjoint warehouses leave no buildable warehouse", func(t *testing.T) {
		components := []Component{
			{ArticleID: articleLeg, RequiredAmount: 1},
			{ArticleID: articleSeat, RequiredAmount: 1},
		}
		perArticle := map[id.ID]Summary{
			articleLeg: {
				Universal:    7,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 7},
			},
			articleSeat: {
				Universal:    9,
				PerWarehouse: map[id.ID]int64{warehouseSouth: 9},
			},
		}

		result := Aggregate(components, perArticle)

		// Parts exist in total but no single warehouse can assemble the
		// product, so the best warehouse figure is zero.
		assert.Empty(t, result.PerWarehouse)
		assert.Zero(t, result.BestWarehouse)
		assert.Equal(t, int64(7), result.Universal)
	})

	t.Run("stock below required amount floors to zero", func(t *testing.T) {
		components := []Component{
			{ArticleID: articleScrew, RequiredAmount: 8},
		}
		perArticle := map[id.ID]Summary{
			articleScrew: {
				Universal:    7,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 7},
			},
		}

		result := Aggregate(components, perArticle)

		assert.Zero(t, result.Universal)
		assert.Zero(t, result.BestWarehouse)
		assert.Equal(t, int64(0), result.PerWarehouse[warehouseNorth])
	})

	t.Run("unknown component zeroes everything", func(t *testing.T) {
		components := []Component{
			{ArticleID: articleLeg, RequiredAmount: 1},
			{ArticleID: articleScrew, RequiredAmount: 2},
		}
		perArticle := map[id.ID]Summary{
			articleLeg: {
				Universal:    12,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 12},
			},
			// articleScrew deliberately absent.
		}

		result := Aggregate(components, perArticle)

		assert.Zero(t, result.Universal)
		assert.Zero(t, result.BestWarehouse)
		assert.Empty(t, result.PerWarehouse)
	})

	t.Run("no components yields an empty summary", func(t *testing.T) {
		result := Aggregate(nil, map[id.ID]Summary{})

		assert.Zero(t, result.Universal)
		assert.Zero(t, result.BestWarehouse)
		assert.Empty(t, result.PerWarehouse)
	})
}

// Adding stock for one component must never lower any availability figure.
func TestAggregateMonotonicInStock(t *testing.T) {
	components := []Component{
		{ArticleID: articleLeg, RequiredAmount: 3},
		{ArticleID: articleScrew, RequiredAmount: 5},
	}

	previous := Summary{}
	for stock := int64(0); stock <= 50; stock += 5 {
		perArticle := map[id.ID]Summary{
			articleLeg: {
				Universal:    stock,
				PerWarehouse: map[id.ID]int64{warehouseNorth: stock},
			},
			articleScrew: {
				Universal:    100,
				PerWarehouse: map[id.ID]int64{warehouseNorth: 100},
			},
		}

		result := Aggregate(components, perArticle)

		require.GreaterOrEqual(t, result.Universal, previous.Universal)
		require.GreaterOrEqual(t, result.BestWarehouse, previous.BestWarehouse)
		require.GreaterOrEqual(t, result.PerWarehouse[warehouseNorth], previous.PerWarehouse[warehouseNorth])
		previous = result
	}
}

func TestAggregateBestNeverExceedsUniversal(t *testing.T) {
	components := []Component{
		{ArticleID: articleLeg, RequiredAmount: 2},
		{ArticleID: articleSeat, RequiredAmount: 3},
	}
	perArticle := map[id.ID]Summary{
		articleLeg: {
			Universal: 23,
			PerWarehouse: map[id.ID]int64{
				warehouseNorth: 14,
				warehouseSouth: 9,
			},
		},
		articleSeat: {
			Universal: 31,
			PerWarehouse: map[id.ID]int64{
				warehouseNorth: 20,
				warehouseSouth: 11,
			},
		},
	}

	result := Aggregate(components, perArticle)

	assert.LessOrEqual(t, result.BestWarehouse, result.Universal)
	for _, count := range result.PerWarehouse {
		assert.LessOrEqual(t, count, result.BestWarehouse)
	}
}
