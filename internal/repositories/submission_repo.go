package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"toolnav/internal/i18n"
	"toolnav/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type submissionRepo struct {
	db Database
}

func NewSubmissionRepo(db Database) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	payload, err := json.Marshal(submission.Payload)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	p := submission.Payload
	query := `
		INSERT INTO tool_submissions (id, slug, name, url, category, contact_email, contact_name, company_name, status, full_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query, submission.ID, submission.Slug, p.Name.Resolve(i18n.English), p.URL, p.Category,
		p.ContactEmail, p.ContactName, p.CompanyName, submission.Status, payload, submission.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tool_submissions WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}
