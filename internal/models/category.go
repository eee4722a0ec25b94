package models

import "toolnav/internal/i18n"

// CategoryRecord is a category row before language resolution
type CategoryRecord struct {
	Key         string
	Name        i18n.Text
	Description i18n.Text
	Count       int // active tools only
}

type Category struct {
	ID          string `json:"id"`   // stable category key
	Name        string `json:"name"` // localized name, key when untranslated
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Tag types
const (
	TagTypeGeneral  = "general"
	TagTypeIndustry = "industry"
)

// TagRecord is a tag row before language resolution
type TagRecord struct {
	Key   string
	Type  string
	Name  i18n.Text
	Count int
}

// SubcategoryRecord groups active tools by their subcategory label
type SubcategoryRecord struct {
	Name  i18n.Text
	Count int
}

// Facet is the public shape of an aggregated tag or subcategory
type Facet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Type  string `json:"type,omitempty"`
	Count int    `json:"count"`
}
