package api

import (
	"context"
	"fmt"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/rs/zerolog"

	"github.com/diogo/startupmentor/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the Ollama client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OllamaClientInterface defines the client operations used by the rest of the program
type OllamaClientInterface interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error)
	ListModels(ctx context.Context) ([]models.LocalModel, error)
	Version(ctx context.Context) (string, error)
	GetModel() string
	SetModel(model string)
	GetEndpoint() string
	IsClosed() bool
	Close()
}

var _ OllamaClientInterface = (*OllamaClient)(nil)

// OllamaClient talks to a local Ollama server
type OllamaClient struct {
	httpClient HTTPDoer
	endpoint   string
	model      string
	log        zerolog.Logger

	// transport settings, only used when no HTTPDoer is injected
	timeoutSeconds     int
	proxyURL           string
	insecureSkipVerify bool

	mu     sync.RWMutex
	closed bool
}

// ClientOption is a function that configures the client
type ClientOption func(*OllamaClient)

// WithModel sets the model used for chat requests
func WithModel(model string) ClientOption {
	return func(c *OllamaClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEndpoint sets the full chat endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *OllamaClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(seconds int) ClientOption {
	return func(c *OllamaClient) {
		c.timeoutSeconds = seconds
	}
}

// WithProxy routes requests through a proxy URL
func WithProxy(proxyURL string) ClientOption {
	return func(c *OllamaClient) {
		c.proxyURL = proxyURL
	}
}

// WithInsecureSkipVerify accepts self-signed certificates (remote Ollama behind TLS)
func WithInsecureSkipVerify(enabled bool) ClientOption {
	return func(c *OllamaClient) {
		c.insecureSkipVerify = enabled
	}
}

// WithLogger sets the logger for request diagnostics
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *OllamaClient) {
		c.log = log
	}
}

// WithHTTPClient injects the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *OllamaClient) {
		c.httpClient = doer
	}
}

// NewClient creates a new OllamaClient
func NewClient(opts ...ClientOption) (*OllamaClient, error) {
	client := &OllamaClient{
		endpoint: models.DefaultChatURL,
		model:    models.DefaultModel,
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		httpClient, err := newTransport(client.timeoutSeconds, client.proxyURL, client.insecureSkipVerify)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

func newTransport(timeoutSeconds int, proxyURL string, insecure bool) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithNotFollowRedirects(),
	}
	if proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(proxyURL))
	}
	if insecure {
		options = append(options, tls_client.WithInsecureSkipVerify())
	}

	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

// Close marks the client closed. Further requests fail.
func (c *OllamaClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *OllamaClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GetModel returns the chat model
func (c *OllamaClient) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel changes the chat model
func (c *OllamaClient) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// GetEndpoint returns the chat endpoint URL
func (c *OllamaClient) GetEndpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// baseURL returns the server root derived from the chat endpoint
func (c *OllamaClient) baseURL() string {
	return models.BaseURL(c.GetEndpoint())
}
