package llamacpp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitbuilder587/llama-probe/internal/domain"
	"github.com/kitbuilder587/llama-probe/internal/llm"
)

const (
	DefaultBaseURL  = "http://localhost:8083"
	DefaultEndpoint = "/completion"
	DefaultTimeout  = 30 * time.Second
)

type Config struct {
	BaseURL  string
	Endpoint string
	Timeout  time.Duration
}

type Client struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(cfg.Endpoint, "/"),
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (json.RawMessage, error) {
	body, err := req.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	logger := c.logger.With(zap.String("request_id", requestID), zap.String("url", c.url))
	logger.Debug("sending completion request", zap.ByteString("body", body))

	start := time.Now()
	resp, respBody, err := llm.DoRequest(c.client, httpReq)
	if err != nil {
		logger.Debug("completion request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	logger.Debug("completion response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := llm.HandleHTTPError(resp, respBody, logger, "llamacpp"); err != nil {
		return nil, err
	}

	return llm.ParseJSON(respBody)
}

var _ llm.Client = (*Client)(nil)
