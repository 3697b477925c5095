package params

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/openlex/lexsearch/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestEmptyQueryStringSwitchesOnAllResults(t *testing.T) {
	p, err := New(Spec{Query: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.AllResults() {
		t.Error("expected all-results mode for empty query string")
	}

	// An explicit all-results request with an empty query is also fine.
	if _, err := New(Spec{Query: "", AllResults: true}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAllResultsAndExactMatchAreMutuallyExclusive(t *testing.T) {
	_, err := New(Spec{Query: "Search", ExactMatch: true, AllResults: true})
	var qe *domain.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}

	// Each mode is fine on its own.
	if _, err := New(Spec{Query: "Search", AllResults: true}); err != nil {
		t.Errorf("all_results alone: %v", err)
	}
	if _, err := New(Spec{Query: "Search", ExactMatch: true}); err != nil {
		t.Errorf("exact_match alone: %v", err)
	}
}

func TestValidYearRanges(t *testing.T) {
	tests := []struct {
		name string
		r    YearRange
	}{
		{"both", YearRange{Start: intPtr(2000), End: intPtr(2020)}},
		{"start only", YearRange{Start: intPtr(2000)}},
		{"end only", YearRange{End: intPtr(2020)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(Spec{Query: "test", YearRange: &tt.r}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestInvertedYearRangeIsRejected(t *testing.T) {
	_, err := New(Spec{Query: "test", YearRange: &YearRange{Start: intPtr(2023), End: intPtr(2000)}})
	if err == nil {
		t.Fatal("expected error for inverted year range")
	}
	if !strings.Contains(err.Error(), "must be less than or equal to") {
		t.Errorf("error = %q", err)
	}
}

func TestValidIDsAreAccepted(t *testing.T) {
	ids := []string{
		"CCLW.family.i00000003.n0000",
		"CCLW.family.10014.0",
		"CCLW.executive.10014.4470",
		"UNFCCC.non-party.1.0",
	}
	if _, err := New(Spec{Query: "test", FamilyIDs: ids}); err != nil {
		t.Errorf("family_ids: %v", err)
	}
	if _, err := New(Spec{Query: "test", DocumentIDs: ids}); err != nil {
		t.Errorf("document_ids: %v", err)
	}
}

func TestInvalidIDsAreRejected(t *testing.T) {
	badIDs := []string{
		"invalid_fam_id",
		"Not.Quite.It",
		"CCLW.family.i00000003.!!!!!!",
		"UNFCCC.family.i00000003",
		"UNFCCC.family.i00000003.n000.11",
	}
	for _, bad := range badIDs {
		t.Run(bad, func(t *testing.T) {
			_, err := New(Spec{
				Query:     "test",
				FamilyIDs: []string{"CCLW.family.i00000003.n0000", bad},
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "id seems invalid: "+bad) {
				t.Errorf("error = %q, want mention of %q", err, bad)
			}

			_, err = New(Spec{
				Query:       "test",
				DocumentIDs: []string{bad, "CCLW.document.i00000004.n0000"},
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "id seems invalid: "+bad) {
				t.Errorf("error = %q, want mention of %q", err, bad)
			}
		})
	}
}

func TestSortFields(t *testing.T) {
	for _, field := range []string{"date", "name"} {
		p, err := New(Spec{Query: "test", SortBy: field})
		if err != nil {
			t.Fatalf("sort_by %q: %v", field, err)
		}
		if p.EngineSortField() == "" || p.EngineSortPrefix() == "" {
			t.Errorf("sort_by %q: missing engine mapping", field)
		}
	}

	_, err := New(Spec{Query: "test", SortBy: "invalid_field"})
	if err == nil || !strings.Contains(err.Error(), "sort_by must be one of") {
		t.Errorf("error = %v", err)
	}
}

func TestSortOrders(t *testing.T) {
	for _, order := range []string{"ascending", "descending"} {
		if _, err := New(Spec{Query: "test", SortOrder: order}); err != nil {
			t.Errorf("sort_order %q: %v", order, err)
		}
	}

	p, err := New(Spec{Query: "test"})
	if err != nil {
		t.Fatal(err)
	}
	if p.SortOrder() != "descending" {
		t.Errorf("default sort order = %q, want descending", p.SortOrder())
	}

	_, err = New(Spec{Query: "test", SortOrder: "invalid_order"})
	if err == nil || !strings.Contains(err.Error(), "sort_order must be one of") {
		t.Errorf("error = %v", err)
	}
}

func TestContinuationTokens(t *testing.T) {
	bad := [][]string{
		{"123"},
		{"!@$"},
		{"ABC-DEF"},
		{"", "ABC DEF"},
	}
	for _, tokens := range bad {
		if _, err := New(Spec{Query: "test", ContinuationTokens: tokens}); err == nil {
			t.Errorf("tokens %v: expected error", tokens)
		}
	}

	good := [][]string{
		nil,
		{"ABCCCABCABCABC"},
		{"", "ABCCC"},
		{"", "ABCCC", "ABBBDDDC"},
		{"ABCC", "ABCCCCCC"},
		{"ABCC", "ABCCCCCC", "ABBBBBDDC"},
		{"aBc123"},
		{"lower"},
	}
	for _, tokens := range good {
		if _, err := New(Spec{Query: "test", ContinuationTokens: tokens}); err != nil {
			t.Errorf("tokens %v: unexpected error: %v", tokens, err)
		}
	}
}

func TestLimits(t *testing.T) {
	p, err := New(Spec{Query: "test"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Limit() != DefaultLimit || p.MaxHitsPerFamily() != DefaultMaxHitsPerFamily {
		t.Errorf("defaults = (%d, %d)", p.Limit(), p.MaxHitsPerFamily())
	}

	if _, err := New(Spec{Query: "test", Limit: MaxLimit + 1}); err == nil {
		t.Error("expected error for limit above the cap")
	}
	if _, err := New(Spec{Query: "test", MaxHitsPerFamily: MaxMaxHitsPerFamily + 1}); err == nil {
		t.Error("expected error for max_hits_per_family above the cap")
	}
}

func TestStringListUnmarshalsScalarAndList(t *testing.T) {
	var f KeywordFilters
	if err := json.Unmarshal([]byte(`{"sources": "CCLW"}`), &f); err != nil {
		t.Fatal(err)
	}
	if len(f.Sources) != 1 || f.Sources[0] != "CCLW" {
		t.Errorf("scalar: %v", f.Sources)
	}

	if err := json.Unmarshal([]byte(`{"languages": ["English", "Swedish"]}`), &f); err != nil {
		t.Fatal(err)
	}
	if len(f.Languages) != 2 {
		t.Errorf("list: %v", f.Languages)
	}
}

func TestFiltersResolveToEngineFieldNames(t *testing.T) {
	p, err := New(Spec{Query: "test", KeywordFilters: KeywordFilters{
		Geographies: StringList{"SWE"},
		Categories:  StringList{"Executive"},
		Languages:   StringList{"English", "Swedish"},
		Sources:     StringList{"CCLW"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"family_geography", "family_category", "document_languages", "family_source"}
	got := p.Filters()
	if len(got) != len(want) {
		t.Fatalf("filters = %v", got)
	}
	for i, fv := range got {
		if fv.Field != want[i] {
			t.Errorf("filters[%d].Field = %q, want %q", i, fv.Field, want[i])
		}
	}
}
