package services

import (
	"context"
	"fmt"

	"toolnav/internal/i18n"
	"toolnav/internal/models"
	"toolnav/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// HomepageSectionSize is the number of tools in each homepage slice
const HomepageSectionSize = 8

type ToolService interface {
	ListTools(ctx context.Context, params models.ListParams) (*models.ListResponse, error)
	GetTool(ctx context.Context, identifier, lang string) (*models.ToolDetail, error)
	RelatedTools(ctx context.Context, identifier, lang string, limit int) ([]models.Tool, error)
	Categories(ctx context.Context, lang string) ([]models.Category, error)
	Tags(ctx context.Context, lang, tagType string) ([]models.Facet, error)
	Subcategories(ctx context.Context, lang string) ([]models.Facet, error)
	Homepage(ctx context.Context, lang string) (*models.HomepageData, error)
}

type toolService struct {
	store     repositories.ToolStore
	projector *Projector
}

func NewToolService(store repositories.ToolStore, projector *Projector) ToolService {
	return &toolService{store: store, projector: projector}
}

func (s *toolService) ListTools(ctx context.Context, params models.ListParams) (*models.ListResponse, error) {
	q := models.ToolQuery{
		Filter:   params.Filter,
		Language: params.Language,
		Sort:     models.SortDefault,
	}

	var total int
	if !params.Page.All {
		var err error
		total, err = s.store.CountTools(ctx, q)
		if err != nil {
			return nil, err
		}
		q.Limit = params.Page.Limit
		q.Offset = pageOffset(params.Page)
	}

	records, err := s.store.ListTools(ctx, q)
	if err != nil {
		return nil, err
	}
	if params.Page.All {
		total = len(records)
	}

	pagination := Paginate(params.Page, total)
	resp := &models.ListResponse{Pagination: &pagination}
	if params.Minimal {
		resp.Data = s.projector.MinimalTools(records, params.Language)
	} else {
		resp.Data = s.projector.Tools(records, params.Language)
	}
	return resp, nil
}

func (s *toolService) GetTool(ctx context.Context, identifier, lang string) (*models.ToolDetail, error) {
	record, err := s.store.GetTool(ctx, identifier, lang)
	if err != nil {
		return nil, err
	}
	detail := s.projector.Detail(record, lang)
	return &detail, nil
}

// RelatedTools returns up to limit tools from the source tool's category, padded
// from other categories when the category runs short. The source is never included.
func (s *toolService) RelatedTools(ctx context.Context, identifier, lang string, limit int) ([]models.Tool, error) {
	source, err := s.store.GetTool(ctx, identifier, lang)
	if err != nil {
		return nil, err
	}

	var records []*models.ToolRecord
	if source.CategoryKey != "" {
		records, err = s.store.ListTools(ctx, models.ToolQuery{
			Filter:   models.ToolFilter{Category: source.CategoryKey, ExcludeID: source.ID},
			Language: lang,
			Sort:     models.SortRelated,
			Limit:    limit,
		})
		if err != nil {
			return nil, fmt.Errorf("same category: %w", err)
		}
	}

	if missing := limit - len(records); missing > 0 {
		padding, err := s.store.ListTools(ctx, models.ToolQuery{
			Filter:   models.ToolFilter{ExcludeCategory: source.CategoryKey, ExcludeID: source.ID},
			Language: lang,
			Sort:     models.SortRelated,
			Limit:    missing,
		})
		if err != nil {
			return nil, fmt.Errorf("other categories: %w", err)
		}
		records = append(records, padding...)
	}

	return s.projector.Tools(records, lang), nil
}

func (s *toolService) Categories(ctx context.Context, lang string) ([]models.Category, error) {
	records, err := s.store.ListCategories(ctx, lang)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		name := r.Name.Resolve(lang)
		if name == "" {
			name = r.Key
		}
		categories = append(categories, models.Category{
			ID:          r.Key,
			Name:        name,
			Slug:        r.Key,
			Description: r.Description.Resolve(lang),
			Count:       r.Count,
		})
	}
	return categories, nil
}

func (s *toolService) Tags(ctx context.Context, lang, tagType string) ([]models.Facet, error) {
	records, err := s.store.ListTags(ctx, lang, tagType)
	if err != nil {
		return nil, err
	}

	tags := make([]models.Facet, 0, len(records))
	for _, r := range records {
		name := r.Name.Resolve(lang)
		if name == "" {
			name = i18n.TitleFromKey(r.Key)
		}
		tags = append(tags, models.Facet{
			ID:    r.Key,
			Name:  name,
			Slug:  r.Key,
			Type:  r.Type,
			Count: r.Count,
		})
	}
	return tags, nil
}

func (s *toolService) Subcategories(ctx context.Context, lang string) ([]models.Facet, error) {
	records, err := s.store.ListSubcategories(ctx, lang)
	if err != nil {
		return nil, err
	}

	subs := make([]models.Facet, 0, len(records))
	for _, r := range records {
		slug := i18n.Slugify(r.Name.Resolve(i18n.English))
		if slug == "" {
			continue
		}
		subs = append(subs, models.Facet{
			ID:    slug,
			Name:  r.Name.Resolve(lang),
			Slug:  slug,
			Count: r.Count,
		})
	}
	return subs, nil
}

// Homepage loads the four homepage sections concurrently. Each query takes its
// own pool connection; the first failure cancels the rest.
func (s *toolService) Homepage(ctx context.Context, lang string) (*models.HomepageData, error) {
	g, ctx := errgroup.WithContext(ctx)
	data := &models.HomepageData{}

	g.Go(func() error {
		categories, err := s.Categories(ctx, lang)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		data.Categories = categories
		return nil
	})

	section := func(name string, dst *[]models.Tool, filter models.ToolFilter, sort models.ToolSort) {
		g.Go(func() error {
			records, err := s.store.ListTools(ctx, models.ToolQuery{
				Filter:   filter,
				Language: lang,
				Sort:     sort,
				Limit:    HomepageSectionSize,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = s.projector.Tools(records, lang)
			return nil
		})
	}
	section("featured", &data.Featured, models.ToolFilter{Featured: true}, models.SortDefault)
	section("latest", &data.Latest, models.ToolFilter{}, models.SortLatest)
	section("popular", &data.Popular, models.ToolFilter{}, models.SortPopular)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
