package handlers

import (
	"errors"
	"net/http"

	"toolnav/internal/common"
	"toolnav/internal/models"
	"toolnav/internal/repositories"
	"toolnav/internal/services"

	"github.com/labstack/echo/v4"
)

// Related tools bounds
const (
	defaultRelatedLimit = 4
	maxRelatedLimit     = 20
)

// ToolHandlers handles tool listing and lookup requests
type ToolHandlers struct {
	toolService services.ToolService
}

func NewToolHandlers(toolService services.ToolService) *ToolHandlers {
	return &ToolHandlers{toolService: toolService}
}

// ListTools handles GET /api/tools
func (h *ToolHandlers) ListTools(c echo.Context) error {
	page, err := common.PageParams(c)
	if err != nil {
		return err
	}

	resp, err := h.toolService.ListTools(c.Request().Context(), models.ListParams{
		Filter:   common.ToolFilter(c),
		Page:     page,
		Language: common.Language(c),
		Minimal:  common.Flag(c.QueryParam("minimal")),
	})
	if err != nil {
		return common.ServerError("Database query", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTool handles GET /api/tools/:identifier where identifier is a slug or id
func (h *ToolHandlers) GetTool(c echo.Context) error {
	tool, err := h.toolService.GetTool(c.Request().Context(), c.Param("identifier"), common.Language(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
		}
		return common.ServerError("Database query", err)
	}
	return c.JSON(http.StatusOK, tool)
}

// RelatedTools handles GET /api/tools/:identifier/related
func (h *ToolHandlers) RelatedTools(c echo.Context) error {
	limit, err := common.IntParam(c, "limit", defaultRelatedLimit, 1, maxRelatedLimit)
	if err != nil {
		return err
	}

	tools, err := h.toolService.RelatedTools(c.Request().Context(), c.Param("identifier"), common.Language(c), limit)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
		}
		return common.ServerError("Related tools query", err)
	}
	return c.JSON(http.StatusOK, models.ListResponse{Data: tools})
}

// Homepage handles GET /api/homepage-data
func (h *ToolHandlers) Homepage(c echo.Context) error {
	data, err := h.toolService.Homepage(c.Request().Context(), common.Language(c))
	if err != nil {
		return common.ServerError("Homepage data query", err)
	}
	return c.JSON(http.StatusOK, models.ListResponse{Data: data})
}
