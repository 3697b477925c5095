package lexsearch

import (
	"github.com/openlex/lexsearch/internal/domain"
	"github.com/openlex/lexsearch/internal/vespa"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDocumentNotFound       = domain.ErrDocumentNotFound
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)

// Typed errors re-exported from the domain layer.
// Use errors.As() to inspect.
type (
	// QueryError reports invalid search input, naming the offending field.
	QueryError = domain.QueryError

	// FetchError reports a non-200 response from the search engine.
	FetchError = domain.FetchError

	// DocumentNotFoundError reports a document fetch for an id the engine
	// does not hold. It unwraps to ErrDocumentNotFound.
	DocumentNotFoundError = domain.DocumentNotFoundError
)

// SplitDocumentID parses a full engine document id of the form
// id:namespace:schema::data_id into its components.
func SplitDocumentID(documentID string) (namespace, schema, dataID string, err error) {
	return vespa.SplitDocumentID(documentID)
}
