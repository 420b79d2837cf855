// Package availability computes how many units of a product can be supplied,
// per warehouse and in total, from per-article warehouse stock.
package availability

import (
	"stockyard/internal/core/id"
)

// Summary is a derived, cacheable availability figure. It is recomputed from
// article rows and never persisted.
type Summary struct {
	// Universal is the total buildable count ignoring warehouse locality.
	Universal int64 `json:"universalAvailability"`

	// BestWarehouse is the highest single-warehouse buildable count.
	BestWarehouse int64 `json:"bestWarehouseAvailability"`

	// PerWarehouse maps warehouse id to the buildable count at that warehouse.
	PerWarehouse map[id.ID]int64 `json:"perWarehouseAvailability"`
}

// Component is one bill-of-materials entry: the article and how many units of
// it one product unit consumes.
type Component struct {
	ArticleID      id.ID `db:"article_id" json:"articleId"`
	RequiredAmount int64 `db:"required_amount" json:"requiredAmount"`
}

// Aggregate folds per-article availability into a per-product summary,
// processing components in their declared order.
//
// A warehouse counts only if every component is stocked there: the first
// component seeds the warehouse set and each later component intersects it.
// When the intersection ends up empty there is no warehouse that can assemble
// the product and BestWarehouse is 0.
func Aggregate(components []Component, perArticle map[id.ID]Summary) Summary {
	result := Summary{
		PerWarehouse: make(map[id.ID]int64),
	}

	for i, component := range components {
		articleAvail := perArticle[component.ArticleID]
		required := component.RequiredAmount

		universal := articleAvail.Universal / required
		if i == 0 {
			result.Universal = universal
		} else {
			result.Universal = min(result.Universal, universal)
		}

		if i == 0 {
			for warehouseID, stock := range articleAvail.PerWarehouse {
				result.PerWarehouse[warehouseID] = stock / required
			}
			continue
		}

		for warehouseID, current := range result.PerWarehouse {
			stock, ok := articleAvail.PerWarehouse[warehouseID]
			if !ok {
				delete(result.PerWarehouse, warehouseID)
				continue
			}
			result.PerWarehouse[warehouseID] = min(current, stock/required)
		}
	}

	for _, count := range result.PerWarehouse {
		result.BestWarehouse = max(result.BestWarehouse, count)
	}

	return result
}
