package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"toolnav/internal/common"
	"toolnav/internal/services"

	"github.com/labstack/echo/v4"
)

// ImageHandlers serves stored tool screenshots
type ImageHandlers struct {
	store  services.ImageStore
	maxAge int
}

func NewImageHandlers(store services.ImageStore, maxAge int) *ImageHandlers {
	return &ImageHandlers{store: store, maxAge: maxAge}
}

// GetImage handles GET /api/images/:filename
func (h *ImageHandlers) GetImage(c echo.Context) error {
	img, err := h.store.Open(c.Request().Context(), c.Param("filename"))
	if err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return common.ServerError("Image read", err)
	}
	defer img.Body.Close()

	header := c.Response().Header()
	header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.maxAge))
	if img.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(img.Size, 10))
	}
	return c.Stream(http.StatusOK, img.ContentType, img.Body)
}
