package vespa

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/openlex/lexsearch/internal/domain"
	"github.com/openlex/lexsearch/internal/domain/search/params"
	"github.com/openlex/lexsearch/internal/domain/search/result"
)

// ParseResponse turns a raw engine search response into the typed family
// hierarchy. A non-200 status is a FetchError regardless of the payload.
func ParseResponse(status int, body []byte, p params.Params) (result.SearchResponse, error) {
	if status != 200 {
		return result.SearchResponse{}, &domain.FetchError{StatusCode: status}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return result.SearchResponse{}, &domain.FetchError{StatusCode: status, Err: err}
	}

	root := dig(raw, map[string]any(nil), "root")
	group := dig(root, map[string]any(nil), "children", 0, "children", 0)

	resp := result.SearchResponse{
		TotalHits:             digInt(root, 0, "fields", "totalCount"),
		TotalFamilyHits:       digInt(group, 0, "fields", "count()"),
		ContinuationToken:     dig(group, "", "continuation", "next"),
		ThisContinuationToken: dig(group, "", "continuation", "this"),
		PrevContinuationToken: dig(group, "", "continuation", "prev"),
	}

	rawFamilies := dig(group, []any(nil), "children")
	resp.Families = make([]result.Family, 0, len(rawFamilies))
	for _, rawFamily := range rawFamilies {
		family, err := parseFamily(rawFamily)
		if err != nil {
			return result.SearchResponse{}, err
		}
		resp.Families = append(resp.Families, family)
	}

	sortFamilies(resp.Families, p)
	return resp, nil
}

func parseFamily(raw any) (result.Family, error) {
	family := result.Family{
		ID:                    dig(raw, "", "value"),
		TotalPassageHits:      digInt(raw, 0, "fields", "count()"),
		ContinuationToken:     dig(raw, "", "children", 0, "continuation", "next"),
		PrevContinuationToken: dig(raw, "", "children", 0, "continuation", "prev"),
	}

	rawHits := dig(raw, []any(nil), "children", 0, "children")
	family.Hits = make([]result.Hit, 0, len(rawHits))
	for _, rawHit := range rawHits {
		record, ok := rawHit.(map[string]any)
		if !ok {
			continue
		}
		hit, err := HitFromResponse(record)
		if err != nil {
			return result.Family{}, err
		}
		family.Hits = append(family.Hits, hit)
	}
	return family, nil
}

// sortFamilies reorders families by the requested sort field. The engine
// applies order() before grouping, so passages inside each family come back
// sorted but family order does not survive the grouping step and has to be
// restored here. The sort is stable so equal keys keep engine order.
func sortFamilies(families []result.Family, p params.Params) {
	if p.SortBy() == "" {
		return
	}

	// Timestamps are compared as instants, not as formatted strings: the
	// engine serializes them with arbitrary zone offsets, and offset-bearing
	// strings do not order chronologically.
	less := func(a, b result.Family) bool {
		switch p.EngineSortField() {
		case "family_publication_ts":
			return firstHitTime(a).Before(firstHitTime(b))
		case "family_name":
			return firstHitName(a) < firstHitName(b)
		default:
			return false
		}
	}

	sort.SliceStable(families, func(i, j int) bool {
		if p.Descending() {
			return less(families[j], families[i])
		}
		return less(families[i], families[j])
	})
}

func firstHitTime(f result.Family) time.Time {
	if len(f.Hits) == 0 {
		return time.Time{}
	}
	return f.Hits[0].Fields().FamilyPublicationTS
}

func firstHitName(f result.Family) string {
	if len(f.Hits) == 0 {
		return ""
	}
	return f.Hits[0].Fields().FamilyName
}
