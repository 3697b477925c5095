package vespa

import (
	"testing"

	"github.com/openlex/lexsearch/internal/domain/search/params"
)

func mustParams(t *testing.T, spec params.Spec) params.Params {
	t.Helper()
	p, err := params.New(spec)
	if err != nil {
		t.Fatalf("params.New failed: %v", err)
	}
	return p
}

func TestBuildRequestBody_Hybrid(t *testing.T) {
	p := mustParams(t, params.Spec{Query: "climate adaptation"})
	embedding := []float32{0.1, 0.2, 0.3}

	body := BuildRequestBody(p, false, embedding)

	if body["ranking.profile"] != "hybrid" {
		t.Errorf("ranking.profile = %v, want hybrid", body["ranking.profile"])
	}
	if body["query"] != "climate adaptation" {
		t.Errorf("query = %v, want raw query string", body["query"])
	}
	got, ok := body["input.query(query_embedding)"].([]float32)
	if !ok || len(got) != 3 {
		t.Errorf("embedding input = %v, want the query embedding", body["input.query(query_embedding)"])
	}
	if body["timeout"] != "20" {
		t.Errorf("timeout = %v, want \"20\"", body["timeout"])
	}
	if body["ranking.softtimeout.factor"] != "0.7" {
		t.Errorf("softtimeout factor = %v, want \"0.7\"", body["ranking.softtimeout.factor"])
	}
	if _, ok := body["yql"].(string); !ok {
		t.Error("body has no yql string")
	}
}

func TestBuildRequestBody_Exact(t *testing.T) {
	p := mustParams(t, params.Spec{Query: "climate adaptation", ExactMatch: true})

	body := BuildRequestBody(p, false, nil)

	if body["ranking.profile"] != "exact" {
		t.Errorf("ranking.profile = %v, want exact", body["ranking.profile"])
	}
	if _, ok := body["input.query(query_embedding)"]; ok {
		t.Error("exact match request must not carry an embedding")
	}
}

func TestBuildRequestBody_Sensitive(t *testing.T) {
	p := mustParams(t, params.Spec{Query: "some sensitive topic"})

	body := BuildRequestBody(p, true, nil)

	if body["ranking.profile"] != "hybrid_no_closeness" {
		t.Errorf("ranking.profile = %v, want hybrid_no_closeness", body["ranking.profile"])
	}
	if _, ok := body["input.query(query_embedding)"]; ok {
		t.Error("sensitive request must not carry an embedding")
	}
}

func TestBuildRequestBody_AllResults(t *testing.T) {
	p := mustParams(t, params.Spec{AllResults: true})

	body := BuildRequestBody(p, false, nil)

	if _, ok := body["ranking.profile"]; ok {
		t.Error("browse request must not carry a ranking profile")
	}
	if _, ok := body["query"]; ok {
		t.Error("browse request must not carry a query string")
	}
	if _, ok := body["input.query(query_embedding)"]; ok {
		t.Error("browse request must not carry an embedding")
	}
	if _, ok := body["yql"].(string); !ok {
		t.Error("body has no yql string")
	}
}
