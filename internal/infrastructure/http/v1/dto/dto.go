// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"stockyard/internal/domain/availability"
	"stockyard/internal/domain/catalog"
)

// AvailabilityResponse wraps a product or article availability summary.
type AvailabilityResponse struct {
	Availability availability.Summary `json:"availability"`
}

// SellRequest identifies the warehouse the sale is fulfilled from.
type SellRequest struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
}

// ListProductsRequest carries catalog pagination parameters.
type ListProductsRequest struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

// ListProductsResponse is one catalog page with availability attached.
type ListProductsResponse struct {
	Records  []catalog.Item `json:"records"`
	LastPage bool           `json:"lastPage"`
}

// SuccessResponse is a generic success acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
