package vespa

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/openlex/lexsearch/internal/domain"
	"github.com/openlex/lexsearch/internal/domain/search/result"
	"github.com/openlex/lexsearch/internal/logger"
	"github.com/openlex/lexsearch/internal/metrics"
)

const (
	defaultTimeout = 30 * time.Second

	certFile = "data-plane-public-cert.pem"
	keyFile  = "data-plane-private-key.pem"
)

// Client talks to a Vespa instance over HTTP, with optional mutual TLS for
// cloud deployments.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// Config holds the engine connection settings.
type Config struct {
	// Endpoint is the engine base URL, e.g. "https://instance.vespa-app.cloud".
	Endpoint string
	// CertDirectory holds the data-plane cert/key pair for mutual TLS.
	// Empty means plain HTTP(S) without a client certificate.
	CertDirectory string
	Timeout       time.Duration
	Logger        *zap.Logger
}

// NewClient creates an engine client. When a cert directory is configured the
// data-plane key pair inside it is loaded for mutual TLS.
func NewClient(cfg *Config) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid engine endpoint %q: %w", cfg.Endpoint, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.CertDirectory != "" {
		cert, err := tls.LoadX509KeyPair(
			filepath.Join(cfg.CertDirectory, certFile),
			filepath.Join(cfg.CertDirectory, keyFile),
		)
		if err != nil {
			return nil, fmt.Errorf("load data-plane key pair: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		http:     httpClient,
		logger:   logger,
	}, nil
}

// Search posts a query request body to the engine and returns the HTTP
// status with the raw response payload. Interpreting non-200 statuses is
// the parser's job.
func (c *Client) Search(ctx context.Context, body map[string]any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal query request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint+"/search/", bytes.NewReader(payload),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.EngineRequestsTotal.WithLabelValues("search", "error").Inc()
		return 0, nil, fmt.Errorf("query search engine: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.EngineRequestsTotal.WithLabelValues("search", "error").Inc()
		return resp.StatusCode, nil, fmt.Errorf("read engine response: %w", err)
	}

	metrics.EngineRequestsTotal.WithLabelValues("search", statusLabel(resp.StatusCode)).Inc()
	metrics.EngineRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	logger.FromContext(ctx, c.logger).Debug("engine query completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return resp.StatusCode, raw, nil
}

// GetDocument fetches a single document by its full engine id of the form
// id:namespace:schema::data_id.
func (c *Client) GetDocument(ctx context.Context, documentID string) (result.Hit, error) {
	namespace, schema, dataID, err := SplitDocumentID(documentID)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/document/v1/%s/%s/docid/%s",
		c.endpoint, namespace, schema, dataID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build document request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.EngineRequestsTotal.WithLabelValues("get_document", "error").Inc()
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()
	metrics.EngineRequestsTotal.WithLabelValues("get_document", statusLabel(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.DocumentNotFoundError{ID: documentID}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{StatusCode: resp.StatusCode}
	}

	var record map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode document response: %w", err)
	}
	return HitFromResponse(record)
}

func statusLabel(code int) string {
	if code >= 200 && code < 300 {
		return "success"
	}
	return "error"
}

// FindCertDirectory locates the data-plane certificate directory the vespa
// CLI maintains under ~/.vespa, using the application named in its
// config.yaml. Returns an error when no usable pair is present.
func FindCertDirectory(home string) (string, error) {
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}
	root := filepath.Join(home, ".vespa")

	raw, err := os.ReadFile(filepath.Join(root, "config.yaml"))
	if err != nil {
		return "", fmt.Errorf("read vespa cli config: %w", err)
	}
	var cfg struct {
		Application string `yaml:"application"`
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return "", fmt.Errorf("parse vespa cli config: %w", err)
	}
	if cfg.Application == "" {
		return "", fmt.Errorf("no application configured in %s", filepath.Join(root, "config.yaml"))
	}

	dir := filepath.Join(root, cfg.Application)
	if _, err := os.Stat(filepath.Join(dir, certFile)); err != nil {
		return "", fmt.Errorf("no data-plane certificate for %s: %w", cfg.Application, err)
	}
	return dir, nil
}
