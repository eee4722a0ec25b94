package models

import (
	"time"

	"toolnav/internal/i18n"
)

// Tool statuses
const (
	StatusActive  = "active"
	StatusPending = "pending"
)

// ToolRecord is the canonical tool representation produced by every store
// adapter. Text fields are bilingual; nullable columns stay pointers until projection.
type ToolRecord struct {
	ID         int64
	Slug       string
	URL        string
	Screenshot string // raw stored reference, see MediaResolver

	Name            i18n.Text
	Title           i18n.Text
	Description     i18n.Text
	LongDescription i18n.Text
	UseCases        i18n.Text
	TargetAudience  i18n.Text
	Subcategory     i18n.Text
	PricingType     i18n.Text

	CategoryKey         string
	CategoryName        i18n.Text
	CategoryDescription i18n.Text

	Rating         *float64
	ViewCount      *int64
	Featured       *bool
	TrialAvailable *bool
	CreatedAt      *time.Time

	Tags         i18n.List
	IndustryTags i18n.List
	KeyFeatures  i18n.List
}

// Tool is the public listing shape
type Tool struct {
	ID             int64    `json:"id"`
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	ThumbnailURL   string   `json:"thumbnail_url"`
	Category       string   `json:"category"`
	CategoryName   string   `json:"category_name"`
	PricingType    string   `json:"pricing_type"`
	Rating         float64  `json:"rating"`
	ViewCount      int64    `json:"view_count"`
	Featured       bool     `json:"featured"`
	Tags           []string `json:"tags"`
	CreatedAt      string   `json:"created_at"`
	TrialAvailable bool     `json:"trial_available"`
}

// ToolDetail extends Tool with the fields only the detail view returns
type ToolDetail struct {
	Tool
	LongDescription     string   `json:"long_description"`
	UseCases            string   `json:"use_cases"`
	TargetAudience      string   `json:"target_audience"`
	Subcategory         string   `json:"subcategory"`
	IndustryTags        []string `json:"industry_tags"`
	KeyFeatures         []string `json:"key_features"`
	CategoryDescription string   `json:"category_description"`
}

// MinimalTool is returned by listings requested with minimal=true
type MinimalTool struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// ToolFilter holds the optional listing predicates. Zero values mean "no filter".
type ToolFilter struct {
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Featured        bool     `json:"featured,omitempty"`
	Search          string   `json:"search,omitempty"`
	ExcludeID       int64    `json:"-"` // related tools: never return the source
	ExcludeCategory string   `json:"-"` // related tools: padding from other categories
}

// ToolSort selects one of the fixed listing orders
type ToolSort int

const (
	SortDefault ToolSort = iota // featured, rating, view_count, created_at
	SortLatest                  // created_at
	SortPopular                 // view_count, created_at
	SortRelated                 // featured, view_count, created_at
)

// ToolQuery is what a store needs to list tools
type ToolQuery struct {
	Filter   ToolFilter
	Language string // canonical code
	Sort     ToolSort
	Limit    int // 0 means no LIMIT/OFFSET
	Offset   int
}
