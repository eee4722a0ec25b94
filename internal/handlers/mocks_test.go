package handlers

import (
	"context"

	"toolnav/internal/models"
	"toolnav/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockToolService struct {
	mock.Mock
}

func (m *MockToolService) ListTools(ctx context.Context, params models.ListParams) (*models.ListResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListResponse), args.Error(1)
}

func (m *MockToolService) GetTool(ctx context.Context, identifier, lang string) (*models.ToolDetail, error) {
	args := m.Called(ctx, identifier, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToolDetail), args.Error(1)
}

func (m *MockToolService) RelatedTools(ctx context.Context, identifier, lang string, limit int) ([]models.Tool, error) {
	args := m.Called(ctx, identifier, lang, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockToolService) Categories(ctx context.Context, lang string) ([]models.Category, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockToolService) Tags(ctx context.Context, lang, tagType string) ([]models.Facet, error) {
	args := m.Called(ctx, lang, tagType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Facet), args.Error(1)
}

func (m *MockToolService) Subcategories(ctx context.Context, lang string) ([]models.Facet, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Facet), args.Error(1)
}

func (m *MockToolService) Homepage(ctx context.Context, lang string) (*models.HomepageData, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HomepageData), args.Error(1)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, req *models.SubmissionRequest) (*models.SubmissionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmissionResult), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimiter) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveSubmission(outcome string) {
	m.Called(outcome)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Open(ctx context.Context, filename string) (*services.Image, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Image), args.Error(1)
}

func (m *MockImageStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
