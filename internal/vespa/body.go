package vespa

import (
	"github.com/openlex/lexsearch/internal/domain/search/params"
	"github.com/openlex/lexsearch/internal/yql"
)

const (
	queryTimeout      = "20"
	softTimeoutFactor = "0.7"

	profileExact             = "exact"
	profileHybrid            = "hybrid"
	profileHybridNoCloseness = "hybrid_no_closeness"
)

// BuildRequestBody assembles the engine query request. The raw query string
// is bound as a request parameter, never interpolated into YQL, so hostile
// input cannot alter the compiled query. Browse mode carries no ranking
// profile and no embedding.
func BuildRequestBody(p params.Params, sensitive bool, embedding []float32) map[string]any {
	builder := yql.Builder{Params: p, Sensitive: sensitive}
	body := map[string]any{
		"yql":                        builder.String(),
		"timeout":                    queryTimeout,
		"ranking.softtimeout.factor": softTimeoutFactor,
	}

	if p.AllResults() {
		return body
	}

	body["query"] = p.Query()
	switch {
	case p.ExactMatch():
		body["ranking.profile"] = profileExact
	case sensitive:
		body["ranking.profile"] = profileHybridNoCloseness
	default:
		body["ranking.profile"] = profileHybrid
		body["input.query(query_embedding)"] = embedding
	}
	return body
}
