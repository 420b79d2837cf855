package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalog"
	"stockyard/internal/domain/product"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles availability, sell and catalog listing requests.
type ProductHandler struct {
	*BaseHandler
	products *product.Service
	catalog  *catalog.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, products *product.Service, catalogSvc *catalog.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		products:    products,
		catalog:     catalogSvc,
	}
}

// GetAvailability handles GET /products/:productId/availability
func (h *ProductHandler) GetAvailability(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	summary, err := h.products.GetAvailability(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AvailabilityResponse{Availability: summary})
}

// Sell handles POST /products/:productId/sell
func (h *ProductHandler) Sell(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	var req dto.SellRequest
	if !h.BindJSON(c, &req) {
		return
	}

	warehouseID, err := id.Parse(req.WarehouseID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}

	if err := h.products.Sell(c.Request.Context(), productID, warehouseID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "stock successfully updated")
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	page := h.ParseIntQuery(c, "page", 1)
	if page < 1 {
		h.Error(c, apperror.NewValidation("page must be positive"))
		return
	}

	result, err := h.catalog.List(c.Request.Context(), h.GetSubject(c), page)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListProductsResponse{
		Records:  result.Records,
		LastPage: result.LastPage,
	})
}
