// Package yql compiles validated search parameters into the engine's query
// language: a filter expression combined with a grouping directive that
// buckets hits by family.
package yql

import (
	"fmt"
	"strings"

	"github.com/openlex/lexsearch/internal/domain/search/params"
)

// targetHits is the match-budget hint passed to the engine's fuzzy operators.
const targetHits = 1000

// Builder assembles a YQL query from validated parameters. Sensitive switches
// the matching strategy: sensitive queries must not consult the embedding
// index, so the nearest-neighbor branches are omitted entirely.
type Builder struct {
	Params    params.Params
	Sensitive bool
}

const yqlBase = `
	select * from sources family_document, document_passage
		where %s
	limit 0
	|
		%s
	all(
		group(family_import_id)
		output(count())
		max(%d)
		%s
		each(
			output(count())
			max(%d)
			each(
				output(
					summary(search_summary)
				)
			)
		)
	)
`

// String assembles the full query with internal whitespace collapsed, so the
// output is deterministic regardless of how the parts are indented here.
func (b *Builder) String() string {
	yql := fmt.Sprintf(yqlBase,
		b.whereClause(),
		b.continuation(),
		b.Params.Limit(),
		b.sort(),
		b.Params.MaxHitsPerFamily(),
	)
	return strings.Join(strings.Fields(yql), " ")
}

// searchTerm builds the clause matching the user's search text. The raw text
// itself is bound as @query_string in the request body, never interpolated.
func (b *Builder) searchTerm() string {
	if b.Params.AllResults() {
		return "( true )"
	}
	if b.Params.ExactMatch() {
		return `
			(
				(family_name contains({stem: false}@query_string)) or
				(family_description contains({stem: false}@query_string)) or
				(text_block contains ({stem: false}@query_string))
			)
		`
	}
	if b.Sensitive {
		return fmt.Sprintf(`
			(
				{"targetHits": %d} weakAnd(
					family_name contains(@query_string),
					family_description contains(@query_string),
					text_block contains(@query_string)
				)
			)
		`, targetHits)
	}
	return fmt.Sprintf(`
		(
			(
			{"targetHits": %d} weakAnd(
				family_name contains(@query_string),
				family_description contains(@query_string),
				text_block contains(@query_string)
			)
			) or (
				[{"targetNumHits": %d}]
				nearestNeighbor(family_description_embedding,query_embedding)
			) or (
				[{"targetNumHits": %d}]
				nearestNeighbor(text_embedding,query_embedding)
			)
		)
	`, targetHits, targetHits, targetHits)
}

func (b *Builder) familyFilter() string {
	return idFilter("family_import_id", b.Params.FamilyIDs())
}

func (b *Builder) documentFilter() string {
	return idFilter("document_import_id", b.Params.DocumentIDs())
}

func idFilter(field string, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("'%s'", Sanitize(id))
	}
	return fmt.Sprintf("(%s in(%s))", field, strings.Join(quoted, ", "))
}

// keywordFilters produces one AND-able group per filter field; values within
// a field are OR'd together.
func (b *Builder) keywordFilters() []string {
	var groups []string
	for _, fv := range b.Params.Filters() {
		clauses := make([]string, len(fv.Values))
		for i, value := range fv.Values {
			clauses[i] = fmt.Sprintf("(%s contains %q)", fv.Field, Sanitize(value))
		}
		groups = append(groups, fmt.Sprintf("(%s)", strings.Join(clauses, " or ")))
	}
	return groups
}

func (b *Builder) yearStartFilter() string {
	if start := b.Params.YearStart(); start != nil {
		return fmt.Sprintf("(family_publication_year >= %d)", *start)
	}
	return ""
}

func (b *Builder) yearEndFilter() string {
	if end := b.Params.YearEnd(); end != nil {
		return fmt.Sprintf("(family_publication_year <= %d)", *end)
	}
	return ""
}

// whereClause ANDs the search-term clause with every applicable filter.
func (b *Builder) whereClause() string {
	parts := []string{b.searchTerm(), b.familyFilter(), b.documentFilter()}
	parts = append(parts, b.keywordFilters()...)
	parts = append(parts, b.yearStartFilter(), b.yearEndFilter())

	filled := parts[:0]
	for _, p := range parts {
		if p != "" {
			filled = append(filled, p)
		}
	}
	return strings.Join(filled, " and ")
}

// continuation prepends the grouping continuation block when resuming a
// paginated result set. One token resumes at the family level; two resume the
// family page and one family's passage page simultaneously.
func (b *Builder) continuation() string {
	tokens := b.Params.ContinuationTokens()
	if len(tokens) == 0 {
		return ""
	}
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = fmt.Sprintf("'%s'", Sanitize(token))
	}
	return fmt.Sprintf("{ 'continuations': [%s] }", strings.Join(quoted, ", "))
}

// sort emits the grouping order directive, or nothing when no sort was
// requested. Engine-side ordering applies before grouping, so family-level
// sorting of the parsed response happens client-side instead.
func (b *Builder) sort() string {
	field := b.Params.EngineSortField()
	if field == "" {
		return ""
	}
	return fmt.Sprintf("order(%smax(%s))", b.Params.EngineSortPrefix(), field)
}
