package scripture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// HeaderKey carries the RapidAPI credential
	HeaderKey = "x-rapidapi-key"
	// HeaderHost names the RapidAPI upstream
	HeaderHost = "x-rapidapi-host"

	defaultAPIErrorMessage = "API Error"
	maxBodySize            = 1 << 20
)

// ErrBodyTooLarge is returned when the upstream body exceeds the read limit
var ErrBodyTooLarge = errors.New("upstream body too large")

// APIError is returned when the upstream answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the scripture API
type Client struct {
	baseURL string
	apiKey  string
	host    string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Host    string
	Timeout time.Duration
	Logger  *zap.Logger

	// HTTPClient overrides the default client; Timeout is ignored when set
	HTTPClient *http.Client
}

// NewClient creates a new scripture API client
func NewClient(cfg *Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL must not be empty")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("API key must not be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		host:    cfg.Host,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// ChapterPath returns the upstream path for a chapter
func ChapterPath(chapter int) string {
	return fmt.Sprintf("/v2/chapters/%d/", chapter)
}

// FetchChapter performs a single GET for the chapter and returns the raw body
func (c *Client) FetchChapter(ctx context.Context, chapter int) ([]byte, error) {
	url := c.baseURL + ChapterPath(chapter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(HeaderKey, c.apiKey)
	req.Header.Set(HeaderHost, c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chapter %d: %w", chapter, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter %d: %w", chapter, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("chapter %d: %w", chapter, ErrBodyTooLarge)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body),
		}
		c.logger.Warn("upstream error",
			zap.Int("chapter", chapter),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	c.logger.Debug("chapter fetched",
		zap.Int("chapter", chapter),
		zap.Int("bytes", len(body)))

	return body, nil
}

// upstreamMessage extracts the "message" field of an error body
func upstreamMessage(body []byte) string {
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return defaultAPIErrorMessage
	}

	msg, ok := payload.Message.(string)
	if !ok || msg == "" {
		return defaultAPIErrorMessage
	}
	return msg
}
