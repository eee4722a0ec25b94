package repositories

import (
	"context"
	"fmt"
	"sort"

	"toolnav/internal/i18n"
	"toolnav/internal/models"
)

// Schema generations
const (
	GenerationTranslations = "translations"
	GenerationJSON         = "json"
)

// ToolStore reads the catalog. One implementation exists per schema generation;
// both return canonical records with bilingual text left unresolved.
type ToolStore interface {
	Generation() string
	ListTools(ctx context.Context, q models.ToolQuery) ([]*models.ToolRecord, error)
	CountTools(ctx context.Context, q models.ToolQuery) (int, error)
	// GetTool looks an active tool up by slug or by numeric id.
	GetTool(ctx context.Context, identifier, lang string) (*models.ToolRecord, error)
	ListCategories(ctx context.Context, lang string) ([]*models.CategoryRecord, error)
	ListTags(ctx context.Context, lang, tagType string) ([]*models.TagRecord, error)
	ListSubcategories(ctx context.Context, lang string) ([]*models.SubcategoryRecord, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// NewToolStore selects the adapter for a schema generation
func NewToolStore(generation string, db Database) (ToolStore, error) {
	switch generation {
	case GenerationTranslations, "":
		return NewTranslationStore(db), nil
	case GenerationJSON:
		return NewJSONStore(db), nil
	default:
		return nil, fmt.Errorf("unknown schema generation %q", generation)
	}
}

// localized builds a Text from a requested-language value and the English
// value of the same column. Non-Chinese languages occupy the English slot so a
// translation in, say, French still wins over English.
func localized(lang string, requested, english *string) i18n.Text {
	req, en := deref(requested), deref(english)
	if i18n.IsChinese(lang) {
		return i18n.Text{EN: en, CN: req}
	}
	if req != "" {
		return i18n.Text{EN: req}
	}
	return i18n.Text{EN: en}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sortTags orders tag aggregates by count descending, then key
func sortTags(tags []*models.TagRecord) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Key < tags[j].Key
	})
}

func sortSubcategories(subs []*models.SubcategoryRecord) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Count != subs[j].Count {
			return subs[i].Count > subs[j].Count
		}
		return subs[i].Name.EN < subs[j].Name.EN
	})
}
