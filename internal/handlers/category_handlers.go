package handlers

import (
	"net/http"
	"strings"

	"toolnav/internal/common"
	"toolnav/internal/models"
	"toolnav/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers serves the aggregated facet lists
type CategoryHandlers struct {
	toolService services.ToolService
}

func NewCategoryHandlers(toolService services.ToolService) *CategoryHandlers {
	return &CategoryHandlers{toolService: toolService}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.toolService.Categories(c.Request().Context(), common.Language(c))
	if err != nil {
		return common.ServerError("Categories query", err)
	}
	return c.JSON(http.StatusOK, models.ListResponse{Data: categories})
}

// ListTags handles GET /api/tags with an optional type=general|industry filter
func (h *CategoryHandlers) ListTags(c echo.Context) error {
	tagType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if tagType != "" && tagType != models.TagTypeGeneral && tagType != models.TagTypeIndustry {
		return common.ValidationError("type", "must be general or industry")
	}

	tags, err := h.toolService.Tags(c.Request().Context(), common.Language(c), tagType)
	if err != nil {
		return common.ServerError("Tags query", err)
	}
	return c.JSON(http.StatusOK, models.ListResponse{Data: tags})
}

// ListSubcategories handles GET /api/subcategories
func (h *CategoryHandlers) ListSubcategories(c echo.Context) error {
	subs, err := h.toolService.Subcategories(c.Request().Context(), common.Language(c))
	if err != nil {
		return common.ServerError("Subcategories query", err)
	}
	return c.JSON(http.StatusOK, models.ListResponse{Data: subs})
}
