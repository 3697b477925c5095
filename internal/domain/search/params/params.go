// Package params validates and normalizes raw search input into a canonical
// request value consumed by the query builder.
package params

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/openlex/lexsearch/internal/domain"
)

// Search parameter limits.
const (
	DefaultLimit            = 100
	MaxLimit                = 500
	DefaultMaxHitsPerFamily = 10
	MaxMaxHitsPerFamily     = 500
)

// Engine field names for the enumerated keyword filter fields.
const (
	fieldGeography = "family_geography"
	fieldCategory  = "family_category"
	fieldLanguage  = "document_languages"
	fieldSource    = "family_source"
)

// Read-only lookup tables, established once at process start.
var (
	sortFields = map[string]string{
		"date": "family_publication_ts",
		"name": "family_name",
	}
	sortOrders = map[string]string{
		"ascending":  "+",
		"descending": "-",
	}
)

// idPattern matches import ids of the form elem.elem.elem.elem where each
// element is alphanumeric with optional internal hyphens or underscores.
var idPattern = regexp.MustCompile(
	`^[a-zA-Z0-9]+([-_]?[a-zA-Z0-9]+)*(\.[a-zA-Z0-9]+([-_]?[a-zA-Z0-9]+)*){3}$`,
)

// Spec carries raw, unvalidated search input.
type Spec struct {
	Query              string         `json:"query" yaml:"query"`
	ExactMatch         bool           `json:"exact_match,omitempty" yaml:"exact_match,omitempty"`
	AllResults         bool           `json:"all_results,omitempty" yaml:"all_results,omitempty"`
	Limit              int            `json:"limit,omitempty" yaml:"limit,omitempty"`
	MaxHitsPerFamily   int            `json:"max_hits_per_family,omitempty" yaml:"max_hits_per_family,omitempty"`
	FamilyIDs          []string       `json:"family_ids,omitempty" yaml:"family_ids,omitempty"`
	DocumentIDs        []string       `json:"document_ids,omitempty" yaml:"document_ids,omitempty"`
	KeywordFilters     KeywordFilters `json:"keyword_filters,omitempty" yaml:"keyword_filters,omitempty"`
	YearRange          *YearRange     `json:"year_range,omitempty" yaml:"year_range,omitempty"`
	SortBy             string         `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
	SortOrder          string         `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	ContinuationTokens []string       `json:"continuation_tokens,omitempty" yaml:"continuation_tokens,omitempty"`
}

// Params is a validated search request. Values never change after New
// returns, so a Params may be shared across goroutines freely.
type Params struct {
	query            string
	exactMatch       bool
	allResults       bool
	limit            int
	maxHitsPerFamily int
	familyIDs        []string
	documentIDs      []string
	filters          []FieldValues
	yearStart        *int
	yearEnd          *int
	sortBy           string
	sortOrder        string
	tokens           []string
}

// New validates raw input and returns a normalized request.
//
// An empty query with no explicit mode requested switches on all-results
// mode, which supports browsing the whole corpus filtered by facets only.
func New(spec Spec) (Params, error) {
	p := Params{
		query:            spec.Query,
		exactMatch:       spec.ExactMatch,
		allResults:       spec.AllResults,
		limit:            spec.Limit,
		maxHitsPerFamily: spec.MaxHitsPerFamily,
		familyIDs:        append([]string(nil), spec.FamilyIDs...),
		documentIDs:      append([]string(nil), spec.DocumentIDs...),
		filters:          spec.KeywordFilters.fieldValues(),
		sortBy:           spec.SortBy,
		sortOrder:        spec.SortOrder,
		tokens:           append([]string(nil), spec.ContinuationTokens...),
	}

	if strings.TrimSpace(p.query) == "" {
		p.allResults = true
	}
	if p.allResults && p.exactMatch {
		return Params{}, domain.NewQueryError(
			"all_results", "exact match and all results are mutually exclusive",
		)
	}

	if p.limit < 0 || p.limit > MaxLimit {
		return Params{}, domain.NewQueryError(
			"limit", "must be between 0 and %d, got %d", MaxLimit, p.limit,
		)
	}
	if p.limit == 0 {
		p.limit = DefaultLimit
	}
	if p.maxHitsPerFamily < 0 || p.maxHitsPerFamily > MaxMaxHitsPerFamily {
		return Params{}, domain.NewQueryError(
			"max_hits_per_family", "must be between 0 and %d, got %d",
			MaxMaxHitsPerFamily, p.maxHitsPerFamily,
		)
	}
	if p.maxHitsPerFamily == 0 {
		p.maxHitsPerFamily = DefaultMaxHitsPerFamily
	}

	for _, field := range []struct {
		name string
		ids  []string
	}{
		{"family_ids", p.familyIDs},
		{"document_ids", p.documentIDs},
	} {
		for _, id := range field.ids {
			if !idPattern.MatchString(id) {
				return Params{}, domain.NewQueryError(field.name, "id seems invalid: %s", id)
			}
		}
	}

	if spec.YearRange != nil {
		start, end := spec.YearRange.Start, spec.YearRange.End
		if start != nil && end != nil && *start > *end {
			return Params{}, domain.NewQueryError(
				"year_range",
				"the first supplied year must be less than or equal to the second, got %d > %d",
				*start, *end,
			)
		}
		p.yearStart = start
		p.yearEnd = end
	}

	if p.sortBy != "" {
		if _, ok := sortFields[p.sortBy]; !ok {
			return Params{}, domain.NewQueryError(
				"sort_by", "sort_by must be one of: date, name; got %q", p.sortBy,
			)
		}
	}
	if p.sortOrder == "" {
		p.sortOrder = "descending"
	}
	if _, ok := sortOrders[p.sortOrder]; !ok {
		return Params{}, domain.NewQueryError(
			"sort_order", "sort_order must be one of: ascending, descending; got %q", p.sortOrder,
		)
	}

	for _, token := range p.tokens {
		if err := validateToken(token); err != nil {
			return Params{}, err
		}
	}

	return p, nil
}

// validateToken rejects values that are obviously not engine-issued
// continuation tokens: alphanumerics with at least one letter. An
// empty string is allowed: it anchors resumption at the first page of the
// outer (family) axis.
func validateToken(token string) error {
	if token == "" {
		return nil
	}
	hasLetter := false
	for _, r := range token {
		switch {
		case unicode.IsUpper(r) || unicode.IsLower(r):
			hasLetter = true
		case r >= '0' && r <= '9':
		default:
			return domain.NewQueryError(
				"continuation_tokens", "token seems invalid: %s", token,
			)
		}
	}
	if !hasLetter {
		return domain.NewQueryError(
			"continuation_tokens", "token seems invalid: %s", token,
		)
	}
	return nil
}

// Query returns the raw search text. It is never interpolated into the
// compiled query; the builder binds it as a named query input instead.
func (p *Params) Query() string { return p.query }

// ExactMatch reports whether literal phrase matching was requested.
func (p *Params) ExactMatch() bool { return p.exactMatch }

// AllResults reports whether the match-everything mode is active.
func (p *Params) AllResults() bool { return p.allResults }

// Limit returns the maximum number of families to return.
func (p *Params) Limit() int { return p.limit }

// MaxHitsPerFamily returns the per-family hit cap.
func (p *Params) MaxHitsPerFamily() int { return p.maxHitsPerFamily }

// FamilyIDs returns the family id membership filter.
func (p *Params) FamilyIDs() []string { return p.familyIDs }

// DocumentIDs returns the document id membership filter.
func (p *Params) DocumentIDs() []string { return p.documentIDs }

// Filters returns the keyword filters resolved to engine field names, in a
// fixed field order.
func (p *Params) Filters() []FieldValues { return p.filters }

// YearStart returns the inclusive lower publication-year bound, if any.
func (p *Params) YearStart() *int { return p.yearStart }

// YearEnd returns the inclusive upper publication-year bound, if any.
func (p *Params) YearEnd() *int { return p.yearEnd }

// SortBy returns the requested sort field name ("" when unset).
func (p *Params) SortBy() string { return p.sortBy }

// SortOrder returns the requested sort order.
func (p *Params) SortOrder() string { return p.sortOrder }

// EngineSortField returns the engine field to sort by, or "" when no sort
// was requested.
func (p *Params) EngineSortField() string { return sortFields[p.sortBy] }

// EngineSortPrefix returns the grouping order prefix ("+" or "-") for the
// requested sort order.
func (p *Params) EngineSortPrefix() string { return sortOrders[p.sortOrder] }

// ContinuationTokens returns the opaque pagination tokens, outer axis first.
func (p *Params) ContinuationTokens() []string { return p.tokens }

// Descending reports whether results should sort descending.
func (p *Params) Descending() bool { return p.sortOrder == "descending" }

// String renders the request for logs, omitting nothing sensitive: search
// input is not secret material.
func (p *Params) String() string {
	return fmt.Sprintf(
		"params{query=%q exact=%t all=%t limit=%d per_family=%d}",
		p.query, p.exactMatch, p.allResults, p.limit, p.maxHitsPerFamily,
	)
}
