package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/article"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ArticleHandler exposes per-article availability.
type ArticleHandler struct {
	*BaseHandler
	availability *article.AvailabilityService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(base *BaseHandler, availability *article.AvailabilityService) *ArticleHandler {
	return &ArticleHandler{
		BaseHandler:  base,
		availability: availability,
	}
}

// GetAvailability handles GET /articles/:articleId/availability
func (h *ArticleHandler) GetAvailability(c *gin.Context) {
	articleID, err := id.Parse(c.Param("articleId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid articleId format"))
		return
	}

	summary, err := h.availability.Resolve(c.Request.Context(), articleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AvailabilityResponse{Availability: summary})
}
