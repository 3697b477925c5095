package lexsearch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openlex/lexsearch/internal/domain/search/params"
	"github.com/openlex/lexsearch/internal/logger"
	"github.com/openlex/lexsearch/internal/metrics"
	"github.com/openlex/lexsearch/internal/vespa"
)

// Search validates the request, compiles it into an engine query and returns
// the parsed family hierarchy. Sensitive queries and clients without an
// embedding provider run without closeness ranking.
func (c *Client) Search(ctx context.Context, spec SearchParameters) (*SearchResponse, error) {
	start := time.Now()

	p, err := params.New(spec)
	if err != nil {
		return nil, err
	}

	sensitive := false
	if c.classifier != nil && !p.AllResults() {
		sensitive = c.classifier.IsSensitive(p.Query())
	}
	noCloseness := sensitive || c.embedder == nil

	var embedding []float32
	if !p.AllResults() && !p.ExactMatch() && !noCloseness {
		res, err := c.embedder.Embed(ctx, p.Query())
		if err != nil {
			return nil, err
		}
		embedding = res.Embedding
	}

	body := vespa.BuildRequestBody(p, noCloseness, embedding)

	queryStart := time.Now()
	status, raw, err := c.engine.Search(ctx, body)
	if err != nil {
		return nil, err
	}
	queryDuration := time.Since(queryStart)

	resp, err := vespa.ParseResponse(status, raw, p)
	if err != nil {
		return nil, err
	}
	resp.QueryDuration = queryDuration
	resp.TotalDuration = time.Since(start)

	metrics.SearchFamiliesReturned.Observe(float64(len(resp.Families)))
	logger.FromContext(ctx, c.logger).Debug("search completed",
		zap.Int("families", len(resp.Families)),
		zap.Int("total_hits", resp.TotalHits),
		zap.Bool("sensitive", sensitive),
		zap.Duration("query_duration", queryDuration),
		zap.Duration("total_duration", resp.TotalDuration))

	return &resp, nil
}

// GetDocument fetches a single document by its full engine id of the form
// id:namespace:schema::data_id. A missing document yields an error matching
// ErrDocumentNotFound.
func (c *Client) GetDocument(ctx context.Context, documentID string) (Hit, error) {
	return c.engine.GetDocument(ctx, documentID)
}
