package services

import "toolnav/internal/models"

// Paginate builds the pagination block for a listing. With the "all" override the
// whole result is one page whose limit equals the total.
func Paginate(req models.PageRequest, total int) models.Pagination {
	if req.All {
		return models.Pagination{Page: 1, Limit: total, Total: total, TotalPages: 1}
	}

	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return models.Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// pageOffset converts a 1-based page into a row offset
func pageOffset(req models.PageRequest) int {
	if req.Page < 1 {
		return 0
	}
	return (req.Page - 1) * req.Limit
}
