package store

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ayala/internal/companies/locality"
	"ayala/internal/companies/models"
	textutil "ayala/pkg/platform/strings"
)

const companyColumns = `id, "BIN", "Company", "OKED", "Activity", "KATO", "Locality", "KRP", "Size",
	tax_payment_2021, tax_payment_2022, tax_payment_2023, tax_payment_2024, tax_payment_2025`

// Locality first, then the latest available tax figure, then a stable name/id
// tiebreak so consecutive pages never overlap.
const companyOrder = `ORDER BY "Locality" ASC,
	COALESCE(tax_payment_2025, tax_payment_2024, tax_payment_2023, tax_payment_2022, tax_payment_2021) DESC NULLS LAST,
	"Company" ASC, id ASC`

const localityCountsQuery = `SELECT "Locality", COUNT(*) AS company_count
FROM companies
WHERE "Locality" IS NOT NULL AND "Locality" <> ''
GROUP BY "Locality"
ORDER BY company_count DESC, "Locality" ASC`

type queryMode int

const (
	// modeTiered uses full-text predicates where the filter has several words.
	modeTiered queryMode = iota
	// modeSimplified uses ILIKE only and survives a missing text search config.
	modeSimplified
)

func (m queryMode) String() string {
	if m == modeSimplified {
		return "simplified"
	}
	return "tiered"
}

type query struct {
	sql  string
	args []any
}

type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return fmt.Sprintf("$%d", len(a.args))
}

// normalizeFilter translates the location and cleans the keyword list. Both
// store implementations run it so they agree on what a filter means.
func normalizeFilter(f models.SearchFilter) models.SearchFilter {
	f.Location = locality.Translate(f.Location)
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.ActivityKeywords = textutil.DedupeAndTrim(f.ActivityKeywords)
	return f
}

// likePattern wraps v for a case-insensitive substring match, escaping the
// LIKE metacharacters.
func likePattern(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(v) + "%"
}

// tsPredicate matches column against a plain text query under the given
// text search configuration. The configuration is inlined as a literal so the
// planner can use the GIN expression indexes.
func tsPredicate(column, config, param string) string {
	return fmt.Sprintf(`to_tsvector('%s', %s) @@ plainto_tsquery('%s', %s)`, config, column, config, param)
}

func whereClause(f models.SearchFilter, mode queryMode, tsConfig string, a *argList) string {
	var conds []string

	if f.Location != "" {
		conds = append(conds, `"Locality" ILIKE `+a.add(likePattern(f.Location)))
	}

	if f.CompanyName != "" {
		if mode == modeTiered && len(strings.Fields(f.CompanyName)) > 1 {
			conds = append(conds, tsPredicate(`"Company"`, tsConfig, a.add(f.CompanyName)))
		} else {
			conds = append(conds, `"Company" ILIKE `+a.add(likePattern(f.CompanyName)))
		}
	}

	switch {
	case len(f.ActivityKeywords) == 0:
	case len(f.ActivityKeywords) == 1:
		conds = append(conds, `"Activity" ILIKE `+a.add(likePattern(f.ActivityKeywords[0])))
	case mode == modeTiered:
		ors := make([]string, 0, len(f.ActivityKeywords))
		for _, kw := range f.ActivityKeywords {
			ors = append(ors, tsPredicate(`"Activity"`, tsConfig, a.add(kw)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	default:
		patterns := make([]string, 0, len(f.ActivityKeywords))
		for _, kw := range f.ActivityKeywords {
			patterns = append(patterns, likePattern(kw))
		}
		conds = append(conds, `"Activity" ILIKE ANY(`+a.add(pq.Array(patterns))+`)`)
	}

	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

func buildSearch(f models.SearchFilter, mode queryMode, tsConfig string) query {
	a := &argList{}
	where := whereClause(f, mode, tsConfig, a)
	limit := a.add(f.Limit)
	offset := a.add(f.Offset)
	sql := strings.Join(nonEmpty(
		"SELECT "+companyColumns,
		"FROM companies",
		where,
		companyOrder,
		"LIMIT "+limit+" OFFSET "+offset,
	), "\n")
	return query{sql: sql, args: a.args}
}

func buildCount(f models.SearchFilter, mode queryMode, tsConfig string) query {
	a := &argList{}
	where := whereClause(f, mode, tsConfig, a)
	sql := strings.Join(nonEmpty("SELECT COUNT(*) FROM companies", where), "\n")
	return query{sql: sql, args: a.args}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
