package store

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayala/internal/companies/models"
)

func TestBuildSearch_LocationOnly(t *testing.T) {
	q := buildSearch(models.SearchFilter{Location: "Алматы", Limit: 10, Offset: 20}, modeTiered, defaultTextSearchConfig)

	assert.Contains(t, q.sql, `WHERE "Locality" ILIKE $1`)
	assert.Contains(t, q.sql, "LIMIT $2 OFFSET $3")
	assert.Contains(t, q.sql, `ORDER BY "Locality" ASC`)
	assert.Equal(t, []any{"%Алматы%", 10, 20}, q.args)
}

func TestBuildSearch_NoFiltersStillPages(t *testing.T) {
	q := buildSearch(models.SearchFilter{Limit: 5}, modeTiered, defaultTextSearchConfig)

	assert.NotContains(t, q.sql, "WHERE")
	assert.Contains(t, q.sql, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{5, 0}, q.args)
}

func TestBuildSearch_NameTiering(t *testing.T) {
	t.Run("single token uses ILIKE", func(t *testing.T) {
		q := buildSearch(models.SearchFilter{CompanyName: "Казахтелеком", Limit: 1}, modeTiered, defaultTextSearchConfig)
		assert.Contains(t, q.sql, `"Company" ILIKE $1`)
	})

	t.Run("several tokens use full text", func(t *testing.T) {
		q := buildSearch(models.SearchFilter{CompanyName: "Казах Телеком", Limit: 1}, modeTiered, defaultTextSearchConfig)
		assert.Contains(t, q.sql, `to_tsvector('russian', "Company") @@ plainto_tsquery('russian', $1)`)
		assert.Equal(t, "Казах Телеком", q.args[0])
	})

	t.Run("simplified mode never uses full text", func(t *testing.T) {
		q := buildSearch(models.SearchFilter{CompanyName: "Казах Телеком", Limit: 1}, modeSimplified, defaultTextSearchConfig)
		assert.NotContains(t, q.sql, "to_tsvector")
		assert.Contains(t, q.sql, `"Company" ILIKE $1`)
	})
}

func TestBuildSearch_ActivityTiering(t *testing.T) {
	t.Run("one keyword uses ILIKE", func(t *testing.T) {
		q := buildSearch(models.SearchFilter{ActivityKeywords: []string{"строительство"}, Limit: 1}, modeTiered, defaultTextSearchConfig)
		assert.Contains(t, q.sql, `"Activity" ILIKE $1`)
		assert.Equal(t, "%строительство%", q.args[0])
	})

	t.Run("several keywords are ORed full text", func(t *testing.T) {
		q := buildSearch(models.SearchFilter{ActivityKeywords: []string{"строительство", "ремонт"}, Limit: 1}, modeTiered, defaultTextSearchConfig)
		assert.Contains(t, q.sql, `(to_tsvector('russian', "Activity") @@ plainto_tsquery('russian', $1) OR to_tsvector('russian', "Activity") @@ plainto_tsquery('russian', $2))`)
	})

	t.Run("simplified uses ILIKE ANY over an array", func(t *testing.T) {
		q := buildSearch(models.SearchFilter{ActivityKeywords: []string{"строительство", "ремонт"}, Limit: 1}, modeSimplified, defaultTextSearchConfig)
		assert.Contains(t, q.sql, `"Activity" ILIKE ANY($1)`)
		require.Len(t, q.args, 3)
		assert.Equal(t, pq.Array([]string{"%строительство%", "%ремонт%"}), q.args[0])
	})
}

func TestBuildSearch_TextSearchConfig(t *testing.T) {
	q := buildSearch(models.SearchFilter{ActivityKeywords: []string{"строительство", "ремонт"}, Limit: 1}, modeTiered, "simple")
	assert.Contains(t, q.sql, `to_tsvector('simple', "Activity") @@ plainto_tsquery('simple', $1)`)
	assert.NotContains(t, q.sql, "russian")
}

func TestWithTextSearchConfig(t *testing.T) {
	assert.Equal(t, defaultTextSearchConfig, buildOptions(nil).tsConfig)
	assert.Equal(t, "english", buildOptions([]Option{WithTextSearchConfig("english")}).tsConfig)
	assert.Equal(t, defaultTextSearchConfig, buildOptions([]Option{WithTextSearchConfig("x'); DROP TABLE companies; --")}).tsConfig)
	assert.Equal(t, defaultTextSearchConfig, buildOptions([]Option{WithTextSearchConfig("")}).tsConfig)
}

func TestBuildCount_MatchesSearchPredicates(t *testing.T) {
	f := models.SearchFilter{Location: "Астана", ActivityKeywords: []string{"IT"}, Limit: 10, Offset: 10}
	q := buildCount(f, modeTiered, defaultTextSearchConfig)

	assert.Contains(t, q.sql, "SELECT COUNT(*) FROM companies")
	assert.Contains(t, q.sql, `"Locality" ILIKE $1 AND "Activity" ILIKE $2`)
	assert.NotContains(t, q.sql, "LIMIT")
	assert.Len(t, q.args, 2)
}

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `%50\% off\_now\\%`, likePattern(`50% off_now\`))
}

func TestNormalizeFilter(t *testing.T) {
	got := normalizeFilter(models.SearchFilter{
		Location:         " almaty ",
		CompanyName:      "  ТОО Ромашка ",
		ActivityKeywords: []string{" торговля", "торговля", ""},
	})
	assert.Equal(t, "Алматы", got.Location)
	assert.Equal(t, "ТОО Ромашка", got.CompanyName)
	assert.Equal(t, []string{"торговля"}, got.ActivityKeywords)
}
