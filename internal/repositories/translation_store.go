package repositories

import (
	"context"
	"fmt"
	"time"

	"toolnav/internal/i18n"
	"toolnav/internal/models"
)

// translationStore reads the normalized schema: tools plus per-language rows in
// tool_translations, category_translations and tag_translations. Every text
// column is joined twice, once for the requested language and once for English.
type translationStore struct {
	db Database
}

func NewTranslationStore(db Database) ToolStore {
	return &translationStore{db: db}
}

var translationDialect = Dialect{
	Status:      "t.status",
	Featured:    "t.featured",
	CategoryKey: "c.category_key",
	ID:          "t.id",
	SearchColumns: []string{
		"COALESCE(tt.name, te.name)",
		"COALESCE(tt.title, te.title)",
		"COALESCE(tt.description, te.description)",
	},
	TagMatch:      "EXISTS (SELECT 1 FROM tool_tags tf JOIN tags tg ON tg.id = tf.tag_id WHERE tf.tool_id = t.id AND tg.tag_key = ANY(%s))",
	JoinsLanguage: true,
}

const translationToolColumns = `
		t.id, t.slug, t.url, t.page_screenshot,
		tt.name, te.name, tt.title, te.title, tt.description, te.description,
		c.category_key, ct.category_name, ce.category_name,
		t.pricing_type, t.rating, t.view_count, t.featured, t.trial_available, t.created_at`

const translationDetailColumns = `
		tt.long_description, te.long_description, tt.use_cases, te.use_cases,
		tt.target_audience, te.target_audience, tt.subcategory, te.subcategory,
		ct.description, ce.description`

func translationFrom(langParam int) string {
	return fmt.Sprintf(`
		FROM tools t
		LEFT JOIN categories c ON t.category_id = c.id
		LEFT JOIN tool_translations tt ON tt.tool_id = t.id AND tt.language_code = $%[1]d
		LEFT JOIN tool_translations te ON te.tool_id = t.id AND te.language_code = 'en'
		LEFT JOIN category_translations ct ON ct.category_id = c.id AND ct.language_code = $%[1]d
		LEFT JOIN category_translations ce ON ce.category_id = c.id AND ce.language_code = 'en'`, langParam)
}

func (s *translationStore) Generation() string {
	return GenerationTranslations
}

func (s *translationStore) CountTools(ctx context.Context, q models.ToolQuery) (int, error) {
	where := BuildWhere(translationDialect, q.Filter, q.Language)
	query := "SELECT COUNT(DISTINCT t.id)" + translationFrom(where.LangParam) + "\n\t\tWHERE " + where.SQL

	var total int
	if err := s.db.QueryRow(ctx, query, where.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tools: %w", err)
	}
	return total, nil
}

func (s *translationStore) ListTools(ctx context.Context, q models.ToolQuery) ([]*models.ToolRecord, error) {
	where := BuildWhere(translationDialect, q.Filter, q.Language)
	query := "SELECT" + translationToolColumns + translationFrom(where.LangParam) +
		"\n\t\tWHERE " + where.SQL + "\n\t\tORDER BY " + OrderBy(q.Sort)
	args := where.Args
	if q.Limit > 0 {
		var paging string
		paging, args = where.Paged(q.Limit, q.Offset)
		query += paging
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var tools []*models.ToolRecord
	for rows.Next() {
		var row translationRow
		if err := rows.Scan(row.fields()...); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, row.record(q.Language))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	if err := s.attachTags(ctx, tools, q.Language); err != nil {
		return nil, err
	}
	return tools, nil
}

func (s *translationStore) GetTool(ctx context.Context, identifier, lang string) (*models.ToolRecord, error) {
	query := "SELECT" + translationToolColumns + "," + translationDetailColumns + translationFrom(1) + `
		WHERE t.status = 'active' AND (t.slug = $2 OR t.id::text = $2)
		LIMIT 1`

	var row translationRow
	var detail translationDetail
	dest := append(row.fields(), detail.fields()...)
	if err := s.db.QueryRow(ctx, query, lang, identifier).Scan(dest...); err != nil {
		return nil, notFound(err)
	}

	tool := row.record(lang)
	detail.apply(tool, lang)

	if err := s.attachTags(ctx, []*models.ToolRecord{tool}, lang); err != nil {
		return nil, err
	}
	features, err := s.features(ctx, tool.ID, lang)
	if err != nil {
		return nil, err
	}
	tool.KeyFeatures = features
	return tool, nil
}

const translationTagsQuery = `
		SELECT tf.tool_id, tg.tag_key, tg.tag_type, tr.tag_name, te.tag_name
		FROM tool_tags tf
		JOIN tags tg ON tg.id = tf.tag_id
		LEFT JOIN tag_translations tr ON tr.tag_id = tg.id AND tr.language_code = $2
		LEFT JOIN tag_translations te ON te.tag_id = tg.id AND te.language_code = 'en'
		WHERE tf.tool_id = ANY($1)
		ORDER BY tf.tool_id, tg.tag_key`

// attachTags loads tags for a page of tools with one query and splits them
// by type into Tags and IndustryTags.
func (s *translationStore) attachTags(ctx context.Context, tools []*models.ToolRecord, lang string) error {
	if len(tools) == 0 {
		return nil
	}

	ids := make([]int64, len(tools))
	for i, t := range tools {
		ids[i] = t.ID
	}

	rows, err := s.db.Query(ctx, translationTagsQuery, ids, lang)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	general := make(map[int64][]i18n.Text)
	industry := make(map[int64][]i18n.Text)
	for rows.Next() {
		var (
			toolID            int64
			key               string
			tagType           *string
			name, englishName *string
		)
		if err := rows.Scan(&toolID, &key, &tagType, &name, &englishName); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		text := tagName(lang, key, name, englishName)
		if deref(tagType) == models.TagTypeIndustry {
			industry[toolID] = append(industry[toolID], text)
		} else {
			general[toolID] = append(general[toolID], text)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}

	for _, t := range tools {
		t.Tags = i18n.ListOf(general[t.ID])
		t.IndustryTags = i18n.ListOf(industry[t.ID])
	}
	return nil
}

func (s *translationStore) features(ctx context.Context, toolID int64, lang string) (i18n.List, error) {
	query := `
		SELECT language_code, feature_text
		FROM tool_features
		WHERE tool_id = $1 AND language_code IN ($2, 'en')
		ORDER BY sort_order`

	rows, err := s.db.Query(ctx, query, toolID, lang)
	if err != nil {
		return i18n.List{}, fmt.Errorf("load features: %w", err)
	}
	defer rows.Close()

	var requested, english []string
	for rows.Next() {
		var code, text string
		if err := rows.Scan(&code, &text); err != nil {
			return i18n.List{}, fmt.Errorf("scan feature: %w", err)
		}
		if code == lang {
			requested = append(requested, text)
		}
		if code == i18n.English {
			english = append(english, text)
		}
	}
	if err := rows.Err(); err != nil {
		return i18n.List{}, fmt.Errorf("load features: %w", err)
	}

	if i18n.IsChinese(lang) {
		return i18n.List{EN: english, CN: requested}, nil
	}
	if len(requested) > 0 {
		return i18n.List{EN: requested}, nil
	}
	return i18n.List{EN: english}, nil
}

func (s *translationStore) ListCategories(ctx context.Context, lang string) ([]*models.CategoryRecord, error) {
	query := `
		SELECT c.category_key, ct.category_name, ce.category_name, ct.description, ce.description,
			COUNT(t.id) AS tool_count
		FROM categories c
		LEFT JOIN category_translations ct ON ct.category_id = c.id AND ct.language_code = $1
		LEFT JOIN category_translations ce ON ce.category_id = c.id AND ce.language_code = 'en'
		LEFT JOIN tools t ON t.category_id = c.id AND t.status = 'active'
		GROUP BY c.id, c.category_key, c.sort_order, ct.category_name, ce.category_name, ct.description, ce.description
		ORDER BY c.sort_order, tool_count DESC`

	rows, err := s.db.Query(ctx, query, lang)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.CategoryRecord
	for rows.Next() {
		var (
			key                 string
			name, nameEN        *string
			description, descEN *string
			count               int
		)
		if err := rows.Scan(&key, &name, &nameEN, &description, &descEN, &count); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &models.CategoryRecord{
			Key:         key,
			Name:        localized(lang, name, nameEN),
			Description: localized(lang, description, descEN),
			Count:       count,
		})
	}
	return categories, rows.Err()
}

func (s *translationStore) ListTags(ctx context.Context, lang, tagType string) ([]*models.TagRecord, error) {
	query := `
		SELECT tg.tag_key, tg.tag_type, tr.tag_name, te.tag_name, COUNT(t.id) AS tool_count
		FROM tags tg
		LEFT JOIN tag_translations tr ON tr.tag_id = tg.id AND tr.language_code = $1
		LEFT JOIN tag_translations te ON te.tag_id = tg.id AND te.language_code = 'en'
		LEFT JOIN tool_tags tf ON tf.tag_id = tg.id
		LEFT JOIN tools t ON t.id = tf.tool_id AND t.status = 'active'
		WHERE ($2 = '' OR tg.tag_type = $2)
		GROUP BY tg.id, tg.tag_key, tg.tag_type, tr.tag_name, te.tag_name
		HAVING COUNT(t.id) > 0
		ORDER BY tool_count DESC, tg.tag_key`

	rows, err := s.db.Query(ctx, query, lang, tagType)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.TagRecord
	for rows.Next() {
		var (
			key          string
			kind         *string
			name, nameEN *string
			count        int
		)
		if err := rows.Scan(&key, &kind, &name, &nameEN, &count); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t := &models.TagRecord{Key: key, Type: deref(kind), Name: tagName(lang, key, name, nameEN), Count: count}
		if t.Type == "" {
			t.Type = models.TagTypeGeneral
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *translationStore) ListSubcategories(ctx context.Context, lang string) ([]*models.SubcategoryRecord, error) {
	query := `
		SELECT te.subcategory, tt.subcategory, COUNT(DISTINCT t.id) AS tool_count
		FROM tools t
		JOIN tool_translations te ON te.tool_id = t.id AND te.language_code = 'en'
		LEFT JOIN tool_translations tt ON tt.tool_id = t.id AND tt.language_code = $1
		WHERE t.status = 'active' AND COALESCE(te.subcategory, '') <> ''
		GROUP BY te.subcategory, tt.subcategory
		ORDER BY tool_count DESC, te.subcategory`

	rows, err := s.db.Query(ctx, query, lang)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var subs []*models.SubcategoryRecord
	for rows.Next() {
		var english, requested *string
		var count int
		if err := rows.Scan(&english, &requested, &count); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		name := i18n.Text{EN: deref(english)}
		if i18n.IsChinese(lang) {
			name.CN = deref(requested)
		}
		subs = append(subs, &models.SubcategoryRecord{Name: name, Count: count})
	}
	return subs, rows.Err()
}

func (s *translationStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tools WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// tagName falls back to a title-cased key when a tag has no English name
func tagName(lang, key string, requested, english *string) i18n.Text {
	text := localized(lang, requested, english)
	if text.EN == "" {
		text.EN = i18n.TitleFromKey(key)
	}
	return text
}

type translationRow struct {
	id                  int64
	slug                string
	url, screenshot     *string
	name, nameEN        *string
	title, titleEN      *string
	description, descEN *string
	categoryKey         *string
	categoryName, catEN *string
	pricingType         *string
	rating              *float64
	viewCount           *int64
	featured, trial     *bool
	createdAt           *time.Time
}

func (r *translationRow) fields() []interface{} {
	return []interface{}{
		&r.id, &r.slug, &r.url, &r.screenshot,
		&r.name, &r.nameEN, &r.title, &r.titleEN, &r.description, &r.descEN,
		&r.categoryKey, &r.categoryName, &r.catEN,
		&r.pricingType, &r.rating, &r.viewCount, &r.featured, &r.trial, &r.createdAt,
	}
}

func (r *translationRow) record(lang string) *models.ToolRecord {
	return &models.ToolRecord{
		ID:             r.id,
		Slug:           r.slug,
		URL:            deref(r.url),
		Screenshot:     deref(r.screenshot),
		Name:           localized(lang, r.name, r.nameEN),
		Title:          localized(lang, r.title, r.titleEN),
		Description:    localized(lang, r.description, r.descEN),
		PricingType:    i18n.Plain(deref(r.pricingType)),
		CategoryKey:    deref(r.categoryKey),
		CategoryName:   localized(lang, r.categoryName, r.catEN),
		Rating:         r.rating,
		ViewCount:      r.viewCount,
		Featured:       r.featured,
		TrialAvailable: r.trial,
		CreatedAt:      r.createdAt,
	}
}

type translationDetail struct {
	longDescription, longDescriptionEN *string
	useCases, useCasesEN               *string
	targetAudience, targetAudienceEN   *string
	subcategory, subcategoryEN         *string
	categoryDesc, categoryDescEN       *string
}

func (d *translationDetail) fields() []interface{} {
	return []interface{}{
		&d.longDescription, &d.longDescriptionEN, &d.useCases, &d.useCasesEN,
		&d.targetAudience, &d.targetAudienceEN, &d.subcategory, &d.subcategoryEN,
		&d.categoryDesc, &d.categoryDescEN,
	}
}

func (d *translationDetail) apply(tool *models.ToolRecord, lang string) {
	tool.LongDescription = localized(lang, d.longDescription, d.longDescriptionEN)
	tool.UseCases = localized(lang, d.useCases, d.useCasesEN)
	tool.TargetAudience = localized(lang, d.targetAudience, d.targetAudienceEN)
	tool.Subcategory = localized(lang, d.subcategory, d.subcategoryEN)
	tool.CategoryDescription = localized(lang, d.categoryDesc, d.categoryDescEN)
}
