package repositories

import (
	"strings"
	"testing"

	"toolnav/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		filter        models.ToolFilter
		lang          string
		expectedSQL   string
		expectedArgs  []interface{}
		expectedParam int
	}{
		{
			name:          "No filters only binds language",
			dialect:       translationDialect,
			lang:          "en",
			expectedSQL:   "t.status = 'active'",
			expectedArgs:  []interface{}{"en"},
			expectedParam: 1,
		},
		{
			name:          "Category filters on key",
			dialect:       translationDialect,
			filter:        models.ToolFilter{Category: "productivity"},
			lang:          "cn",
			expectedSQL:   "t.status = 'active' AND c.category_key = $1",
			expectedArgs:  []interface{}{"productivity", "cn"},
			expectedParam: 2,
		},
		{
			name:    "Category and search put language third",
			dialect: translationDialect,
			filter:  models.ToolFilter{Category: "writing", Search: "chat"},
			lang:    "en",
			expectedSQL: "t.status = 'active' AND c.category_key = $1 AND (" +
				"COALESCE(tt.name, te.name) ILIKE $2 OR " +
				"COALESCE(tt.title, te.title) ILIKE $2 OR " +
				"COALESCE(tt.description, te.description) ILIKE $2)",
			expectedArgs:  []interface{}{"writing", "%chat%", "en"},
			expectedParam: 3,
		},
		{
			name:          "Featured adds no parameter",
			dialect:       translationDialect,
			filter:        models.ToolFilter{Featured: true},
			lang:          "en",
			expectedSQL:   "t.status = 'active' AND t.featured = true",
			expectedArgs:  []interface{}{"en"},
			expectedParam: 1,
		},
		{
			name:    "Tags bind one array parameter",
			dialect: translationDialect,
			filter:  models.ToolFilter{Tags: []string{" writing", "", "seo "}},
			lang:    "en",
			expectedSQL: "t.status = 'active' AND EXISTS (SELECT 1 FROM tool_tags tf JOIN tags tg ON tg.id = tf.tag_id " +
				"WHERE tf.tool_id = t.id AND tg.tag_key = ANY($1))",
			expectedArgs:  []interface{}{[]string{"writing", "seo"}, "en"},
			expectedParam: 2,
		},
		{
			name:          "Blank search is ignored",
			dialect:       translationDialect,
			filter:        models.ToolFilter{Search: "   "},
			lang:          "en",
			expectedSQL:   "t.status = 'active'",
			expectedArgs:  []interface{}{"en"},
			expectedParam: 1,
		},
		{
			name:          "Related exclusions",
			dialect:       translationDialect,
			filter:        models.ToolFilter{ExcludeCategory: "writing", ExcludeID: 7},
			lang:          "en",
			expectedSQL:   "t.status = 'active' AND c.category_key IS DISTINCT FROM $1 AND t.id <> $2",
			expectedArgs:  []interface{}{"writing", int64(7), "en"},
			expectedParam: 3,
		},
		{
			name:    "JSON dialect never binds language",
			dialect: jsonDialect,
			filter:  models.ToolFilter{Category: "video", Search: "edit"},
			lang:    "cn",
			expectedSQL: "t.status = 'active' AND t.category = $1 AND (" +
				jsonText("t.name") + " ILIKE $2 OR " + jsonText("t.title") + " ILIKE $2 OR " +
				jsonText("t.description") + " ILIKE $2)",
			expectedArgs:  []interface{}{"video", "%edit%"},
			expectedParam: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := BuildWhere(tt.dialect, tt.filter, tt.lang)
			assert.Equal(t, tt.expectedSQL, where.SQL)
			assert.Equal(t, tt.expectedArgs, where.Args)
			assert.Equal(t, tt.expectedParam, where.LangParam)
		})
	}
}

func TestBuildWhere_SearchParameterReused(t *testing.T) {
	where := BuildWhere(translationDialect, models.ToolFilter{Category: "a", Featured: true, Search: "x"}, "en")

	assert.Equal(t, 3, strings.Count(where.SQL, "ILIKE $2"))
	assert.Equal(t, 3, where.LangParam)
	require.Len(t, where.Args, 3)
	assert.Equal(t, "en", where.Args[where.LangParam-1])
}

func TestWhereClausePaged(t *testing.T) {
	where := BuildWhere(translationDialect, models.ToolFilter{Category: "a", Search: "b"}, "en")

	clause, args := where.Paged(10, 20)

	assert.Equal(t, " LIMIT $4 OFFSET $5", clause)
	assert.Equal(t, []interface{}{"a", "%b%", "en", 10, 20}, args)
	assert.Len(t, where.Args, 3, "paging must not mutate the shared filter arguments")
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%chat%", containsPattern("chat"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "t.featured DESC, t.rating DESC, t.view_count DESC, t.created_at DESC, t.id DESC", OrderBy(models.SortDefault))
	assert.Equal(t, "t.created_at DESC, t.id DESC", OrderBy(models.SortLatest))
	assert.Equal(t, "t.view_count DESC, t.created_at DESC, t.id DESC", OrderBy(models.SortPopular))
	assert.Equal(t, "t.featured DESC, t.view_count DESC, t.created_at DESC, t.id DESC", OrderBy(models.SortRelated))
}

func TestNewToolStore(t *testing.T) {
	store, err := NewToolStore(GenerationTranslations, nil)
	require.NoError(t, err)
	assert.Equal(t, GenerationTranslations, store.Generation())

	store, err = NewToolStore(GenerationJSON, nil)
	require.NoError(t, err)
	assert.Equal(t, GenerationJSON, store.Generation())

	_, err = NewToolStore("xml", nil)
	assert.Error(t, err)
}
