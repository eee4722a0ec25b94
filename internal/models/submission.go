package models

import (
	"time"

	"github.com/google/uuid"

	"toolnav/internal/i18n"
)

// SubmissionRequest is the payload of POST /api/tools/submit. Text fields take
// either {"en": ..., "cn": ...} objects or plain strings.
type SubmissionRequest struct {
	Name            i18n.Text              `json:"name"`
	Title           i18n.Text              `json:"title"`
	Description     i18n.Text              `json:"description"`
	LongDescription i18n.Text              `json:"long_description"`
	Subcategory     i18n.Text              `json:"subcategory"`
	UseCases        i18n.Text              `json:"use_cases"`
	TargetAudience  i18n.Text              `json:"target_audience"`
	URL             string                 `json:"url"`
	ThumbnailURL    string                 `json:"thumbnail_url"`
	Category        string                 `json:"category"`
	Tags            []string               `json:"tags"`
	IndustryTags    []string               `json:"industry_tags"`
	KeyFeatures     []string               `json:"key_features"`
	PricingType     string                 `json:"pricing_type"`
	PricingDetails  map[string]interface{} `json:"pricing_details,omitempty"`
	TrialAvailable  bool                   `json:"trial_available"`
	ContactEmail    string                 `json:"contact_email"`
	ContactName     string                 `json:"contact_name"`
	CompanyName     string                 `json:"company_name"`
}

// Submission is a stored intake record awaiting promotion
type Submission struct {
	ID        uuid.UUID          `json:"id"`
	Slug      string             `json:"slug"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	Payload   *SubmissionRequest `json:"full_data"`
}

// SubmissionResult is returned to the submitter
type SubmissionResult struct {
	ID      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}
