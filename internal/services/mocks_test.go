package services

import (
	"context"

	"toolnav/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockToolStore struct {
	mock.Mock
}

func (m *MockToolStore) Generation() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockToolStore) ListTools(ctx context.Context, q models.ToolQuery) ([]*models.ToolRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ToolRecord), args.Error(1)
}

func (m *MockToolStore) CountTools(ctx context.Context, q models.ToolQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockToolStore) GetTool(ctx context.Context, identifier, lang string) (*models.ToolRecord, error) {
	args := m.Called(ctx, identifier, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToolRecord), args.Error(1)
}

func (m *MockToolStore) ListCategories(ctx context.Context, lang string) ([]*models.CategoryRecord, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CategoryRecord), args.Error(1)
}

func (m *MockToolStore) ListTags(ctx context.Context, lang, tagType string) ([]*models.TagRecord, error) {
	args := m.Called(ctx, lang, tagType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TagRecord), args.Error(1)
}

func (m *MockToolStore) ListSubcategories(ctx context.Context, lang string) ([]*models.SubcategoryRecord, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubcategoryRecord), args.Error(1)
}

func (m *MockToolStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}
