package handlers

import (
	"github.com/labstack/echo/v4"
)

// Handlers bundles every route handler for registration
type Handlers struct {
	Tools       *ToolHandlers
	Categories  *CategoryHandlers
	Submissions *SubmissionHandlers
	Images      *ImageHandlers
	Health      *HealthHandlers
	Metrics     echo.HandlerFunc
}

func RegisterRoutes(e *echo.Echo, h *Handlers) {
	e.GET("/", h.Health.Root)
	e.GET("/health", h.Health.HealthCheck)
	if h.Metrics != nil {
		e.GET("/metrics", h.Metrics)
	}

	api := e.Group("/api")
	// submit is registered before :identifier so it is never read as a slug
	api.POST("/tools/submit", h.Submissions.SubmitTool)
	api.GET("/tools", h.Tools.ListTools)
	api.GET("/tools/:identifier", h.Tools.GetTool)
	api.GET("/tools/:identifier/related", h.Tools.RelatedTools)
	api.GET("/homepage-data", h.Tools.Homepage)

	api.GET("/categories", h.Categories.ListCategories)
	api.GET("/tags", h.Categories.ListTags)
	api.GET("/subcategories", h.Categories.ListSubcategories)

	api.GET("/images/:filename", h.Images.GetImage)
}
