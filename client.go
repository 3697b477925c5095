package lexsearch

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openlex/lexsearch/internal/config"
	"github.com/openlex/lexsearch/internal/logger"
	"github.com/openlex/lexsearch/internal/metrics"
	"github.com/openlex/lexsearch/internal/sensitivity"
	"github.com/openlex/lexsearch/internal/transport/openai"
	"github.com/openlex/lexsearch/internal/vespa"
)

// Client is the lexsearch SDK entry point.
type Client struct {
	engine     *vespa.Client
	embedder   Embedder
	classifier *sensitivity.Classifier
	logger     *zap.Logger
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("lexsearch: engine endpoint required (use WithEndpoint)")
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	certDir := cfg.certDirectory
	if certDir == "" && cfg.discoverCerts {
		var err error
		if certDir, err = vespa.FindCertDirectory(""); err != nil {
			return nil, fmt.Errorf("lexsearch: %w", err)
		}
	}

	engine, err := vespa.NewClient(&vespa.Config{
		Endpoint:      cfg.endpoint,
		CertDirectory: certDir,
		Timeout:       cfg.timeout,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("lexsearch: %w", err)
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("lexsearch: %w", err)
	}

	metrics.RegisterEngineMetrics()

	return &Client{
		engine:     engine,
		embedder:   cfg.embedder,
		classifier: classifier,
		logger:     log,
	}, nil
}

// NewFromConfig creates a Client from the YAML configuration for the given
// environment (local, dev, prod), wiring up the logger, embedding provider
// and sensitive term list it names. An empty env falls back to the ENV
// variable via config.GetEnv.
func NewFromConfig(env string) (*Client, error) {
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("lexsearch: %w", err)
	}

	log, err := logger.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("lexsearch: %w", err)
	}

	opts := []Option{
		WithEndpoint(cfg.Engine.Endpoint),
		WithTimeout(time.Duration(cfg.Engine.TimeoutSec) * time.Second),
		WithLogger(log),
		WithSensitivityThreshold(cfg.Sensitivity.Threshold),
	}
	if cfg.Engine.CertDirectory != "" {
		opts = append(opts, WithCertDirectory(cfg.Engine.CertDirectory))
	}
	if cfg.Sensitivity.TermsPath != "" {
		opts = append(opts, WithSensitiveTermsFile(cfg.Sensitivity.TermsPath))
	}
	if cfg.Embedding.APIKey != "" {
		metrics.RegisterEmbeddingMetrics()
		opts = append(opts, WithEmbedder(openai.NewEmbedder(&openai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     log,
		})))
	}

	return New(opts...)
}

func buildClassifier(cfg *clientConfig) (*sensitivity.Classifier, error) {
	terms := cfg.sensitiveTerms
	if cfg.sensitiveTermsPath != "" {
		loaded, err := sensitivity.LoadTermsFile(cfg.sensitiveTermsPath)
		if err != nil {
			return nil, err
		}
		terms = append(terms, loaded...)
	}
	if len(terms) == 0 {
		return nil, nil
	}
	return sensitivity.NewClassifier(terms, cfg.sensitivityThreshold), nil
}
