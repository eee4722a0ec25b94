package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"toolnav/internal/i18n"
	"toolnav/internal/models"
	"toolnav/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidSubmission = errors.New("invalid submission")

// FieldError names the submission field that failed validation
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidSubmission, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidSubmission
}

type SubmissionService interface {
	Submit(ctx context.Context, req *models.SubmissionRequest) (*models.SubmissionResult, error)
}

type submissionService struct {
	tools       repositories.ToolStore
	submissions repositories.SubmissionRepository
	logger      *zap.Logger
}

func NewSubmissionService(tools repositories.ToolStore, submissions repositories.SubmissionRepository, logger *zap.Logger) SubmissionService {
	return &submissionService{tools: tools, submissions: submissions, logger: logger}
}

// Submit stores a pending submission. The slug comes from the English name; if
// it is already used by a tool or an earlier submission a short random suffix
// is appended.
func (s *submissionService) Submit(ctx context.Context, req *models.SubmissionRequest) (*models.SubmissionResult, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, i18n.Slugify(req.Name.Resolve(i18n.English)))
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		ID:        uuid.New(),
		Slug:      slug,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
		Payload:   req,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info("tool submitted",
		zap.String("id", submission.ID.String()),
		zap.String("slug", slug),
		zap.String("url", req.URL))

	return &models.SubmissionResult{
		ID:      submission.ID,
		Slug:    slug,
		Status:  submission.Status,
		Message: "Tool submitted successfully and is pending review",
	}, nil
}

func (s *submissionService) uniqueSlug(ctx context.Context, slug string) (string, error) {
	taken, err := s.tools.SlugExists(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("check tool slug: %w", err)
	}
	if !taken {
		taken, err = s.submissions.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check submission slug: %w", err)
		}
	}
	if taken {
		slug = slug + "-" + uuid.New().String()[:8]
	}
	return slug, nil
}

func validateSubmission(req *models.SubmissionRequest) error {
	if req == nil {
		return &FieldError{Field: "payload", Reason: "is empty"}
	}
	if i18n.Slugify(req.Name.Resolve(i18n.English)) == "" {
		return &FieldError{Field: "name", Reason: "is required"}
	}
	u, err := url.ParseRequestURI(strings.TrimSpace(req.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &FieldError{Field: "url", Reason: "must be an absolute http(s) URL"}
	}
	return nil
}
