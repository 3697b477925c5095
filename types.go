package lexsearch

import (
	"github.com/openlex/lexsearch/internal/domain"
	"github.com/openlex/lexsearch/internal/domain/search/params"
	"github.com/openlex/lexsearch/internal/domain/search/result"
)

// Search request types re-exported from the domain layer.
type (
	// SearchParameters carries raw search input. Zero value plus a Query
	// is a valid request; empty Query switches to browse mode.
	SearchParameters = params.Spec

	// KeywordFilters restricts results by enumerated document facets.
	KeywordFilters = params.KeywordFilters

	// YearRange restricts results by publication year, inclusive. Either
	// bound may be nil.
	YearRange = params.YearRange

	// StringList decodes from either a JSON/YAML scalar or a list.
	StringList = params.StringList
)

// Search result types re-exported from the domain layer.
type (
	// SearchResponse is a parsed engine response.
	SearchResponse = result.SearchResponse

	// Family is one group of related documents in a response.
	Family = result.Family

	// Hit is a single result at document or passage granularity.
	Hit = result.Hit

	// Document is a hit covering a whole document.
	Document = result.Document

	// Passage is a hit covering a single text block.
	Passage = result.Passage
)

// Embedding types re-exported from the domain layer.
type (
	// Embedder turns query text into a vector.
	Embedder = domain.Embedder

	// EmbeddingResult is a computed embedding with token usage.
	EmbeddingResult = domain.EmbeddingResult
)

// Search parameter limits.
const (
	DefaultLimit            = params.DefaultLimit
	MaxLimit                = params.MaxLimit
	DefaultMaxHitsPerFamily = params.DefaultMaxHitsPerFamily
	MaxMaxHitsPerFamily     = params.MaxMaxHitsPerFamily
)
