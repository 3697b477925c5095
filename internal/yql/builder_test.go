package yql

import (
	"strings"
	"testing"

	"github.com/openlex/lexsearch/internal/domain/search/params"
)

func mustParams(t *testing.T, spec params.Spec) params.Params {
	t.Helper()
	p, err := params.New(spec)
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	return p
}

func intPtr(i int) *int { return &i }

func TestMatchingProfilesProduceDifferentQueries(t *testing.T) {
	yearRange := &params.YearRange{Start: intPtr(2000), End: intPtr(2023)}

	exact := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test", YearRange: yearRange, ExactMatch: true,
	})}).String()
	if !strings.Contains(exact, "stem: false") {
		t.Error("exact query should use non-stemmed matching")
	}
	if strings.Contains(exact, "nearestNeighbor") {
		t.Error("exact query should not use vector search")
	}

	hybrid := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test", YearRange: yearRange,
	})}).String()
	if got := strings.Count(hybrid, "nearestNeighbor"); got != 2 {
		t.Errorf("hybrid query has %d nearestNeighbor branches, want 2", got)
	}
	if !strings.Contains(hybrid, "family_description_embedding") ||
		!strings.Contains(hybrid, "text_embedding") {
		t.Error("hybrid query should target both embedding fields")
	}

	sensitive := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test", YearRange: yearRange,
	}), Sensitive: true}).String()
	if strings.Contains(sensitive, "nearestNeighbor") {
		t.Error("sensitive query should not use vector search")
	}
	if !strings.Contains(sensitive, "weakAnd") {
		t.Error("sensitive query should still use keyword matching")
	}

	queries := map[string]bool{exact: true, hybrid: true, sensitive: true}
	if len(queries) != 3 {
		t.Error("profiles should produce distinct queries")
	}
}

func TestAllResultsMatchesEverything(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{AllResults: true})}).String()
	if !strings.Contains(yql, "( true )") {
		t.Errorf("all-results query = %q", yql)
	}
	if strings.Contains(yql, "weakAnd") || strings.Contains(yql, "nearestNeighbor") {
		t.Error("all-results query should have no matching clause")
	}
}

func TestRawQueryStringNeverAppearsInYQL(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{Query: "climate"})}).String()
	// The raw text goes in the request body where the engine cleans it.
	if strings.Contains(yql, "climate") {
		t.Errorf("raw user input leaked into the query: %q", yql)
	}
	if !strings.Contains(yql, "@query_string") {
		t.Error("query should bind the query_string input")
	}
}

func TestKeywordFiltersAppearInYQL(t *testing.T) {
	filters := params.KeywordFilters{
		Geographies: params.StringList{"SWE"},
		Categories:  params.StringList{"Executive"},
		Languages:   params.StringList{"English", "Swedish"},
		Sources:     params.StringList{"CCLW"},
	}
	yql := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test", KeywordFilters: filters,
	})}).String()

	for _, want := range []string{
		"family_geography", "SWE",
		"family_category", "Executive",
		"document_languages", "English", "Swedish",
		"family_source", "CCLW",
	} {
		if !strings.Contains(yql, want) {
			t.Errorf("query missing %q: %s", want, yql)
		}
	}

	// Values within a field OR together.
	if !strings.Contains(yql, `(document_languages contains "English") or (document_languages contains "Swedish")`) {
		t.Errorf("language values should be OR'd: %s", yql)
	}
}

func TestFilterValuesAreSanitized(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test",
		KeywordFilters: params.KeywordFilters{
			Sources: params.StringList{`CCLW" or true or family_name contains "`},
		},
	})}).String()
	if strings.Contains(yql, `""`) || strings.Contains(yql, `\"`) {
		t.Errorf("unsanitized value reached the query: %s", yql)
	}
}

func TestIDFiltersAppearInYQL(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{
		Query:     "test",
		FamilyIDs: []string{"CCLW.family.i00000003.n0000", "CCLW.family.10014.0"},
	})}).String()
	if !strings.Contains(yql, "family_import_id in('CCLW.family.i00000003.n0000', 'CCLW.family.10014.0')") {
		t.Errorf("family filter missing: %s", yql)
	}

	yql = (&Builder{Params: mustParams(t, params.Spec{
		Query:       "test",
		DocumentIDs: []string{"CCLW.document.i00000004.n0000", "CCLW.executive.10014.4470"},
	})}).String()
	if !strings.Contains(yql, "document_import_id in('CCLW.document.i00000004.n0000', 'CCLW.executive.10014.4470')") {
		t.Errorf("document filter missing: %s", yql)
	}
}

func TestYearRangesAppearInYQL(t *testing.T) {
	tests := []struct {
		name    string
		r       params.YearRange
		include []string
		exclude []string
	}{
		{"both", params.YearRange{Start: intPtr(2000), End: intPtr(2020)}, []string{">= 2000", "<= 2020"}, nil},
		{"start only", params.YearRange{Start: intPtr(2000)}, []string{">= 2000"}, []string{"<="}},
		{"end only", params.YearRange{End: intPtr(2020)}, []string{"<= 2020"}, []string{">="}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yql := (&Builder{Params: mustParams(t, params.Spec{
				Query: "test", YearRange: &tt.r,
			})}).String()
			for _, want := range tt.include {
				if !strings.Contains(yql, want) {
					t.Errorf("query missing %q: %s", want, yql)
				}
			}
			for _, not := range tt.exclude {
				if strings.Contains(yql, not) {
					t.Errorf("query should not contain %q: %s", not, yql)
				}
			}
		})
	}
}

func TestNoFiltersLeaveOnlySearchTerm(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{Query: "test", ExactMatch: true})}).String()
	where := yql[strings.Index(yql, "where"):strings.Index(yql, "limit 0")]
	if strings.Contains(where, " and ") {
		t.Errorf("no dangling AND expected: %s", where)
	}
}

func TestContinuationTokensAppearInYQL(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{
		Query:              "test",
		ContinuationTokens: []string{"BGAAABEBEBC"},
	})}).String()
	if !strings.Contains(yql, "{ 'continuations': ['BGAAABEBEBC'] }") {
		t.Errorf("continuation block missing: %s", yql)
	}

	yql = (&Builder{Params: mustParams(t, params.Spec{
		Query:              "test",
		ContinuationTokens: []string{"BGAAABEBEBC", "BGAAABEBEBEBC"},
	})}).String()
	if !strings.Contains(yql, "['BGAAABEBEBC', 'BGAAABEBEBEBC']") {
		t.Errorf("two-level continuation block missing: %s", yql)
	}

	yql = (&Builder{Params: mustParams(t, params.Spec{Query: "test"})}).String()
	if strings.Contains(yql, "continuations") {
		t.Errorf("no continuation block expected: %s", yql)
	}
}

func TestSortDirective(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test", SortBy: "date", SortOrder: "ascending",
	})}).String()
	if !strings.Contains(yql, "order(+max(family_publication_ts))") {
		t.Errorf("sort directive missing: %s", yql)
	}

	yql = (&Builder{Params: mustParams(t, params.Spec{Query: "test", SortBy: "name"})}).String()
	if !strings.Contains(yql, "order(-max(family_name))") {
		t.Errorf("descending default missing: %s", yql)
	}

	yql = (&Builder{Params: mustParams(t, params.Spec{Query: "test"})}).String()
	if strings.Contains(yql, "order(") {
		t.Errorf("no sort directive expected: %s", yql)
	}
}

func TestGroupingDirectiveCarriesLimits(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{
		Query: "test", Limit: 7, MaxHitsPerFamily: 3,
	})}).String()
	if !strings.Contains(yql, "group(family_import_id)") {
		t.Errorf("grouping missing: %s", yql)
	}
	if !strings.Contains(yql, "max(7)") || !strings.Contains(yql, "max(3)") {
		t.Errorf("limits missing: %s", yql)
	}
	if strings.Count(yql, "output(count())") != 2 {
		t.Errorf("per-level hit counts missing: %s", yql)
	}
}

func TestOutputWhitespaceIsCollapsed(t *testing.T) {
	yql := (&Builder{Params: mustParams(t, params.Spec{Query: "test"})}).String()
	if strings.Contains(yql, "\n") || strings.Contains(yql, "\t") || strings.Contains(yql, "  ") {
		t.Errorf("whitespace not collapsed: %q", yql)
	}
}
