package services

import (
	"time"

	"toolnav/internal/models"
)

const defaultPricingType = "freemium"

// Projector maps store records onto the public response shapes. Missing values
// become their documented defaults; projection never fails.
type Projector struct {
	media MediaResolver
}

func NewProjector(media MediaResolver) *Projector {
	return &Projector{media: media}
}

func (p *Projector) Tool(r *models.ToolRecord, lang string) models.Tool {
	tool := models.Tool{
		ID:           r.ID,
		Slug:         r.Slug,
		Name:         r.Name.Resolve(lang),
		Title:        r.Title.Resolve(lang),
		Description:  r.Description.Resolve(lang),
		URL:          r.URL,
		ThumbnailURL: p.media.Resolve(r.Screenshot),
		Category:     r.CategoryKey,
		CategoryName: r.CategoryName.Resolve(lang),
		PricingType:  r.PricingType.Resolve(lang),
		Tags:         r.Tags.Resolve(lang),
	}
	if tool.CategoryName == "" {
		tool.CategoryName = r.CategoryKey
	}
	if tool.PricingType == "" {
		tool.PricingType = defaultPricingType
	}
	if r.Rating != nil {
		tool.Rating = *r.Rating
	}
	if r.ViewCount != nil {
		tool.ViewCount = *r.ViewCount
	}
	if r.Featured != nil {
		tool.Featured = *r.Featured
	}
	if r.TrialAvailable != nil {
		tool.TrialAvailable = *r.TrialAvailable
	}
	if r.CreatedAt != nil {
		tool.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return tool
}

func (p *Projector) Detail(r *models.ToolRecord, lang string) models.ToolDetail {
	return models.ToolDetail{
		Tool:                p.Tool(r, lang),
		LongDescription:     r.LongDescription.Resolve(lang),
		UseCases:            r.UseCases.Resolve(lang),
		TargetAudience:      r.TargetAudience.Resolve(lang),
		Subcategory:         r.Subcategory.Resolve(lang),
		IndustryTags:        r.IndustryTags.Resolve(lang),
		KeyFeatures:         r.KeyFeatures.Resolve(lang),
		CategoryDescription: r.CategoryDescription.Resolve(lang),
	}
}

func (p *Projector) Minimal(r *models.ToolRecord, lang string) models.MinimalTool {
	return models.MinimalTool{
		ID:       r.ID,
		Name:     r.Name.Resolve(lang),
		Title:    r.Title.Resolve(lang),
		URL:      r.URL,
		Category: r.CategoryKey,
		Slug:     r.Slug,
	}
}

// Tools projects a batch. The result is never nil so it encodes as [].
func (p *Projector) Tools(records []*models.ToolRecord, lang string) []models.Tool {
	tools := make([]models.Tool, 0, len(records))
	for _, r := range records {
		tools = append(tools, p.Tool(r, lang))
	}
	return tools
}

func (p *Projector) MinimalTools(records []*models.ToolRecord, lang string) []models.MinimalTool {
	tools := make([]models.MinimalTool, 0, len(records))
	for _, r := range records {
		tools = append(tools, p.Minimal(r, lang))
	}
	return tools
}
