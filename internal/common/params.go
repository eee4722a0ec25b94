package common

import (
	"math"
	"strconv"
	"strings"

	"toolnav/internal/i18n"
	"toolnav/internal/models"

	"github.com/labstack/echo/v4"
)

// Listing bounds
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// Language reads ?language= and returns its canonical code
func Language(c echo.Context) string {
	return i18n.Normalize(c.QueryParam("language"))
}

// Flag reports whether a query flag is "true" or "1", case-insensitive
func Flag(value string) bool {
	value = strings.TrimSpace(value)
	return value == "1" || strings.EqualFold(value, "true")
}

// SplitTags splits a comma separated tag filter, dropping blanks
func SplitTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// IntParam parses an optional integer query parameter within [lo, hi]
func IntParam(c echo.Context, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError(name, "must be an integer")
	}
	if n < lo || n > hi {
		return 0, ValidationError(name, "must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
	}
	return n, nil
}

// PageParams validates page, limit and the all override
func PageParams(c echo.Context) (models.PageRequest, error) {
	page, err := IntParam(c, "page", DefaultPage, 1, math.MaxInt32)
	if err != nil {
		return models.PageRequest{}, err
	}
	limit, err := IntParam(c, "limit", DefaultLimit, 1, MaxLimit)
	if err != nil {
		return models.PageRequest{}, err
	}
	return models.PageRequest{Page: page, Limit: limit, All: Flag(c.QueryParam("all"))}, nil
}

// ToolFilter reads the listing filters. Malformed values count as absent.
func ToolFilter(c echo.Context) models.ToolFilter {
	return models.ToolFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Tags:     SplitTags(c.QueryParam("tags")),
		Featured: Flag(c.QueryParam("featured")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
	}
}
