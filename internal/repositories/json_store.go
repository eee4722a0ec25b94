package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"toolnav/internal/i18n"
	"toolnav/internal/models"
)

// jsonStore reads the denormalized schema where ai_tools keeps every
// language-dependent column as a JSONB {"en": ..., "cn": ...} value and
// categories carry name_en/name_cn columns. Nothing joins on language, so
// resolution happens entirely after the scan.
type jsonStore struct {
	db Database
}

func NewJSONStore(db Database) ToolStore {
	return &jsonStore{db: db}
}

// jsonTagKey derives a tag key in SQL the same way i18n.Slugify does in Go
const jsonTagKey = `lower(replace(replace(trim(COALESCE(tag.value->>'en', tag.value #>> '{}')), ' ', '-'), '_', '-'))`

// jsonText flattens a bilingual JSONB column to its values so search never
// matches the keys or punctuation of the document. Plain string values are
// taken as is.
func jsonText(col string) string {
	return fmt.Sprintf("concat_ws(' ', %[1]s->>'en', %[1]s->>'cn', %[1]s->>'zh', CASE WHEN jsonb_typeof(%[1]s) = 'string' THEN %[1]s #>> '{}' END)", col)
}

var jsonDialect = Dialect{
	Status:        "t.status",
	Featured:      "t.featured",
	CategoryKey:   "t.category",
	ID:            "t.id",
	SearchColumns: []string{jsonText("t.name"), jsonText("t.title"), jsonText("t.description")},
	TagMatch:      "EXISTS (SELECT 1 FROM jsonb_array_elements(COALESCE(t.tags, '[]'::jsonb)) AS tag(value) WHERE " + jsonTagKey + " = ANY(%s))",
}

const jsonToolColumns = `
		t.id, t.slug, t.url, t.page_screenshot,
		t.name, t.title, t.description,
		t.category, c.name_en, c.name_cn,
		t.pricing_type, t.rating, t.view_count, t.featured, t.trial_available, t.created_at,
		t.tags`

const jsonDetailColumns = `
		t.long_description, t.use_cases, t.target_audience, t.subcategory,
		t.industry_tags, t.key_features, c.description_en, c.description_cn`

const jsonFrom = `
		FROM ai_tools t
		LEFT JOIN categories c ON c.slug = t.category`

func (s *jsonStore) Generation() string {
	return GenerationJSON
}

func (s *jsonStore) CountTools(ctx context.Context, q models.ToolQuery) (int, error) {
	where := BuildWhere(jsonDialect, q.Filter, q.Language)
	query := "SELECT COUNT(DISTINCT t.id)" + jsonFrom + "\n\t\tWHERE " + where.SQL

	var total int
	if err := s.db.QueryRow(ctx, query, where.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tools: %w", err)
	}
	return total, nil
}

func (s *jsonStore) ListTools(ctx context.Context, q models.ToolQuery) ([]*models.ToolRecord, error) {
	where := BuildWhere(jsonDialect, q.Filter, q.Language)
	query := "SELECT" + jsonToolColumns + jsonFrom + "\n\t\tWHERE " + where.SQL + "\n\t\tORDER BY " + OrderBy(q.Sort)
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
		var row jsonRow
		if err := rows.Scan(row.fields()...); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, row.record())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return tools, nil
}

func (s *jsonStore) GetTool(ctx context.Context, identifier, _ string) (*models.ToolRecord, error) {
	query := "SELECT" + jsonToolColumns + "," + jsonDetailColumns + jsonFrom + `
		WHERE t.status = 'active' AND (t.slug = $1 OR t.id::text = $1)
		LIMIT 1`

	var row jsonRow
	var detail jsonDetail
	dest := append(row.fields(), detail.fields()...)
	if err := s.db.QueryRow(ctx, query, identifier).Scan(dest...); err != nil {
		return nil, notFound(err)
	}

	tool := row.record()
	detail.apply(tool)
	return tool, nil
}

func (s *jsonStore) ListCategories(ctx context.Context, _ string) ([]*models.CategoryRecord, error) {
	query := `
		SELECT c.slug, c.name_en, c.name_cn, c.description_en, c.description_cn,
			COUNT(t.id) AS tool_count
		FROM categories c
		LEFT JOIN ai_tools t ON t.category = c.slug AND t.status = 'active'
		GROUP BY c.slug, c.name_en, c.name_cn, c.description_en, c.description_cn, c.sort_order
		ORDER BY c.sort_order, tool_count DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.CategoryRecord
	for rows.Next() {
		var (
			slug           string
			nameEN, nameCN *string
			descEN, descCN *string
			count          int
		)
		if err := rows.Scan(&slug, &nameEN, &nameCN, &descEN, &descCN, &count); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &models.CategoryRecord{
			Key:         slug,
			Name:        i18n.Text{EN: deref(nameEN), CN: deref(nameCN)},
			Description: i18n.Text{EN: deref(descEN), CN: deref(descCN)},
			Count:       count,
		})
	}
	return categories, rows.Err()
}

// ListTags aggregates the tags and industry_tags arrays of active tools. Tags in
// this schema have no stable key, so one is derived from the English name.
func (s *jsonStore) ListTags(ctx context.Context, _ string, tagType string) ([]*models.TagRecord, error) {
	query := `
		SELECT tag.value, 'general' AS tag_type, COUNT(DISTINCT t.id)
		FROM ai_tools t
		CROSS JOIN LATERAL jsonb_array_elements(COALESCE(t.tags, '[]'::jsonb)) AS tag(value)
		WHERE t.status = 'active'
		GROUP BY tag.value
		UNION ALL
		SELECT tag.value, 'industry' AS tag_type, COUNT(DISTINCT t.id)
		FROM ai_tools t
		CROSS JOIN LATERAL jsonb_array_elements(COALESCE(t.industry_tags, '[]'::jsonb)) AS tag(value)
		WHERE t.status = 'active'
		GROUP BY tag.value`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	merged := make(map[string]*models.TagRecord)
	var tags []*models.TagRecord
	for rows.Next() {
		var (
			raw   []byte
			kind  string
			count int
		)
		if err := rows.Scan(&raw, &kind, &count); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		if tagType != "" && kind != tagType {
			continue
		}
		name := i18n.ParseText(raw)
		key := i18n.Slugify(name.Resolve(i18n.English))
		if key == "" || count == 0 {
			continue
		}
		id := kind + "/" + key
		if existing, ok := merged[id]; ok {
			existing.Count += count
			continue
		}
		tag := &models.TagRecord{Key: key, Type: kind, Name: name, Count: count}
		merged[id] = tag
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	sortTags(tags)
	return tags, nil
}

func (s *jsonStore) ListSubcategories(ctx context.Context, _ string) ([]*models.SubcategoryRecord, error) {
	query := `
		SELECT t.subcategory, COUNT(*)
		FROM ai_tools t
		WHERE t.status = 'active' AND t.subcategory IS NOT NULL AND t.subcategory <> '{}'::jsonb
		GROUP BY t.subcategory`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	merged := make(map[string]*models.SubcategoryRecord)
	var subs []*models.SubcategoryRecord
	for rows.Next() {
		var raw []byte
		var count int
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		name := i18n.ParseText(raw)
		key := i18n.Slugify(name.Resolve(i18n.English))
		if key == "" {
			continue
		}
		if existing, ok := merged[key]; ok {
			existing.Count += count
			continue
		}
		sub := &models.SubcategoryRecord{Name: name, Count: count}
		merged[key] = sub
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	sortSubcategories(subs)
	return subs, nil
}

func (s *jsonStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ai_tools WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

type jsonRow struct {
	id                     int64
	slug                   string
	url, screenshot        *string
	name, title, desc      []byte
	category               *string
	categoryEN, categoryCN *string
	pricingType            []byte
	rating                 *float64
	viewCount              *int64
	featured               *bool
	trial                  []byte
	createdAt              *time.Time
	tags                   []byte
}

func (r *jsonRow) fields() []interface{} {
	return []interface{}{
		&r.id, &r.slug, &r.url, &r.screenshot,
		&r.name, &r.title, &r.desc,
		&r.category, &r.categoryEN, &r.categoryCN,
		&r.pricingType, &r.rating, &r.viewCount, &r.featured, &r.trial, &r.createdAt,
		&r.tags,
	}
}

func (r *jsonRow) record() *models.ToolRecord {
	return &models.ToolRecord{
		ID:             r.id,
		Slug:           r.slug,
		URL:            deref(r.url),
		Screenshot:     deref(r.screenshot),
		Name:           i18n.ParseText(r.name),
		Title:          i18n.ParseText(r.title),
		Description:    i18n.ParseText(r.desc),
		PricingType:    lowerText(i18n.ParseText(r.pricingType)),
		CategoryKey:    deref(r.category),
		CategoryName:   i18n.Text{EN: deref(r.categoryEN), CN: deref(r.categoryCN)},
		Rating:         r.rating,
		ViewCount:      r.viewCount,
		Featured:       r.featured,
		TrialAvailable: jsonBool(r.trial),
		CreatedAt:      r.createdAt,
		Tags:           i18n.ParseList(r.tags),
	}
}

type jsonDetail struct {
	longDescription, useCases []byte
	targetAudience, subcat    []byte
	industryTags, keyFeatures []byte
	descEN, descCN            *string
}

func (d *jsonDetail) fields() []interface{} {
	return []interface{}{
		&d.longDescription, &d.useCases, &d.targetAudience, &d.subcat,
		&d.industryTags, &d.keyFeatures, &d.descEN, &d.descCN,
	}
}

func (d *jsonDetail) apply(tool *models.ToolRecord) {
	tool.LongDescription = i18n.ParseText(d.longDescription)
	tool.UseCases = i18n.ParseText(d.useCases)
	tool.TargetAudience = i18n.ParseText(d.targetAudience)
	tool.Subcategory = i18n.ParseText(d.subcat)
	tool.IndustryTags = i18n.ParseList(d.industryTags)
	tool.KeyFeatures = i18n.ParseList(d.keyFeatures)
	tool.CategoryDescription = i18n.Text{EN: deref(d.descEN), CN: deref(d.descCN)}
}

func lowerText(t i18n.Text) i18n.Text {
	return i18n.Text{EN: strings.ToLower(t.EN), CN: strings.ToLower(t.CN)}
}

// jsonBool reads trial_available, stored either as a JSONB boolean or as
// bilingual text such as {"en":"Yes","cn":"是"}. Text is judged on its
// English value.
func jsonBool(raw []byte) *bool {
	if len(raw) == 0 {
		return nil
	}
	var flag *bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag
	}
	text := i18n.ParseText(raw)
	if text.IsZero() {
		return nil
	}
	var b bool
	switch strings.ToLower(strings.TrimSpace(text.Resolve(i18n.English))) {
	case "yes", "true", "1":
		b = true
	}
	return &b
}
