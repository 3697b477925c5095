package lexsearch

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	endpoint      string
	certDirectory string
	discoverCerts bool
	timeout       time.Duration

	embedder Embedder

	sensitiveTerms       []string
	sensitiveTermsPath   string
	sensitivityThreshold float64

	logger *zap.Logger
}

// WithEndpoint sets the search engine base URL. Required.
func WithEndpoint(endpoint string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = endpoint
	})
}

// WithCertDirectory sets a directory holding the data-plane certificate and
// key used for mutual TLS with a cloud engine deployment.
func WithCertDirectory(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.certDirectory = dir
	})
}

// WithCertDiscovery locates the data-plane certificate directory from the
// vespa CLI configuration under the user's home directory.
func WithCertDiscovery() Option {
	return optionFunc(func(c *clientConfig) {
		c.discoverCerts = true
	})
}

// WithTimeout sets the HTTP timeout for engine requests. Default 30s.
func WithTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = timeout
	})
}

// WithEmbedder sets the query embedding provider. Without one, queries fall
// back to the ranking profile that needs no query vector.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithSensitiveTerms sets the sensitive term list directly.
func WithSensitiveTerms(terms []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sensitiveTerms = terms
	})
}

// WithSensitiveTermsFile loads the sensitive term list from a TSV file with
// a keyword column.
func WithSensitiveTermsFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sensitiveTermsPath = path
	})
}

// WithSensitivityThreshold tunes the proportion of a query a sensitive term
// must cover before the query is classified sensitive. Default 0.5.
func WithSensitivityThreshold(threshold float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.sensitivityThreshold = threshold
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
