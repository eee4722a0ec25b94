package models

// Pagination is the metadata attached to paged listings
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageRequest is a validated page/limit pair plus the "all" override
type PageRequest struct {
	Page  int
	Limit int
	All   bool
}

// ListResponse is the shared list envelope
type ListResponse struct {
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ListParams carries a parsed /api/tools request
type ListParams struct {
	Filter   ToolFilter
	Page     PageRequest
	Language string
	Minimal  bool
}

// HomepageData aggregates the homepage sections
type HomepageData struct {
	Categories []Category `json:"categories"`
	Featured   []Tool     `json:"featured"`
	Latest     []Tool     `json:"latest"`
	Popular    []Tool     `json:"popular"`
}
