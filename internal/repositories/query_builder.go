package repositories

import (
	"fmt"
	"strings"

	"toolnav/internal/models"
)

// Dialect names the column expressions a schema generation exposes to the
// listing filters.
type Dialect struct {
	Status        string
	Featured      string
	CategoryKey   string
	ID            string
	SearchColumns []string // name, title, description
	TagMatch      string   // printf pattern, %s receives the tag array placeholder
	JoinsLanguage bool     // FROM clause references the language parameter
}

// WhereClause is a conjunctive filter with its positional arguments
type WhereClause struct {
	SQL       string
	Args      []interface{}
	LangParam int // index of the language parameter, 0 when unused
}

// BuildWhere assembles the listing filter. The active-status predicate is always
// present; every other predicate is added only when its filter value is set.
// The language parameter, when the dialect needs one, is always bound last so
// the count and data queries can share the clause unchanged.
func BuildWhere(d Dialect, f models.ToolFilter, lang string) WhereClause {
	conditions := []string{fmt.Sprintf("%s = '%s'", d.Status, models.StatusActive)}
	args := []interface{}{}
	conditionCount := 0

	if f.Category != "" {
		conditionCount++
		conditions = append(conditions, fmt.Sprintf("%s = $%d", d.CategoryKey, conditionCount))
		args = append(args, f.Category)
	}

	if f.ExcludeCategory != "" {
		conditionCount++
		conditions = append(conditions, fmt.Sprintf("%s IS DISTINCT FROM $%d", d.CategoryKey, conditionCount))
		args = append(args, f.ExcludeCategory)
	}

	if f.ExcludeID != 0 {
		conditionCount++
		conditions = append(conditions, fmt.Sprintf("%s <> $%d", d.ID, conditionCount))
		args = append(args, f.ExcludeID)
	}

	if tags := cleanTags(f.Tags); len(tags) > 0 && d.TagMatch != "" {
		conditionCount++
		conditions = append(conditions, fmt.Sprintf(d.TagMatch, fmt.Sprintf("$%d", conditionCount)))
		args = append(args, tags)
	}

	if f.Featured {
		conditions = append(conditions, d.Featured+" = true")
	}

	if search := strings.TrimSpace(f.Search); search != "" && len(d.SearchColumns) > 0 {
		conditionCount++
		matches := make([]string, len(d.SearchColumns))
		for i, col := range d.SearchColumns {
			matches[i] = fmt.Sprintf("%s ILIKE $%d", col, conditionCount)
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
		args = append(args, containsPattern(search))
	}

	where := WhereClause{SQL: strings.Join(conditions, " AND ")}
	if d.JoinsLanguage {
		conditionCount++
		where.LangParam = conditionCount
		args = append(args, lang)
	}
	where.Args = args
	return where
}

// Paged appends LIMIT/OFFSET placeholders after the filter arguments. The
// receiver's argument slice is not modified.
func (w WhereClause) Paged(limit, offset int) (string, []interface{}) {
	args := make([]interface{}, 0, len(w.Args)+2)
	args = append(args, w.Args...)
	args = append(args, limit, offset)
	n := len(w.Args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// OrderBy returns the ORDER BY expression for a listing sort. Both schema
// generations alias the tool table as t.
func OrderBy(sort models.ToolSort) string {
	switch sort {
	case models.SortLatest:
		return "t.created_at DESC, t.id DESC"
	case models.SortPopular:
		return "t.view_count DESC, t.created_at DESC, t.id DESC"
	case models.SortRelated:
		return "t.featured DESC, t.view_count DESC, t.created_at DESC, t.id DESC"
	default:
		return "t.featured DESC, t.rating DESC, t.view_count DESC, t.created_at DESC, t.id DESC"
	}
}

// containsPattern wraps a search term for ILIKE, escaping the wildcard characters
// so user input is matched literally.
func containsPattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
