package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/martijn/typesprint/internal/core/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// GenerateParagraph handles GET /generated_paragraph
func (h *ContentHandler) GenerateParagraph(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ParagraphResponse{
		Paragraph: h.contentService.GenerateParagraph(),
	})
}
