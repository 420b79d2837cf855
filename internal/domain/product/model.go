// Package product provides the assembled-item catalog and the sell operation.
// A product is defined by its bill of materials: the articles it consumes and
// how many units of each.
package product

import (
	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/availability"
)

// Product is an assembled item.
type Product struct {
	ID id.ID `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	// Components is the ordered bill of materials. Never empty for a stored
	// product.
	Components []availability.Component `db:"components" json:"containsArticles"`

	// AssemblyTimeMs is how long one unit takes to assemble.
	AssemblyTimeMs int64 `db:"assembly_time_ms" json:"assemblyTimeInMs"`
}

// Validate checks the invariants the bulk loader relies on. A product with an
// empty bill of materials is rejected, not stored.
func (p Product) Validate() error {
	if id.IsNil(p.ID) {
		return apperror.NewValidation("product id is required")
	}
	if p.Name == "" {
		return apperror.NewValidation("product name is required")
	}
	if len(p.Components) == 0 {
		return apperror.NewValidation("product must contain at least one article").
			WithDetail("field", "containsArticles")
	}
	for i, component := range p.Components {
		if id.IsNil(component.ArticleID) {
			return apperror.NewValidation("component article id is required").
				WithDetail("component", i)
		}
		if component.RequiredAmount <= 0 {
			return apperror.NewValidation("component required amount must be positive").
				WithDetail("component", i)
		}
	}
	if p.AssemblyTimeMs < 0 {
		return apperror.NewValidation("assembly time cannot be negative").
			WithDetail("field", "assemblyTimeInMs")
	}
	return nil
}

// ArticleIDs returns the component article ids in declaration order.
func (p Product) ArticleIDs() []id.ID {
	ids := make([]id.ID, len(p.Components))
	for i, component := range p.Components {
		ids[i] = component.ArticleID
	}
	return ids
}
