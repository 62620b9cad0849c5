package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ppiankov/acevents/internal/model"
	"github.com/ppiankov/acevents/internal/util"
	"golang.org/x/time/rate"
)

// maxResponseBytes bounds the decoded body of one split response
const maxResponseBytes = 64 << 20

// HTTPSegmenter delegates splitting to a remote sentence-split service.
//
// Request:  POST <url> {"texts": ["...", "..."]}
// Response: 200 {"sentences": [["...", "..."], ["..."]]}
//
// Requests are throttled by a token bucket and attempted exactly once.
type HTTPSegmenter struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

type splitRequest struct {
	Texts []string `json:"texts"`
}

type splitResponse struct {
	Sentences [][]string `json:"sentences"`
}

// NewHTTPSegmenter creates a client for the service at cfg.URL
func NewHTTPSegmenter(cfg model.SegmenterConfig) (*HTTPSegmenter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("segmenter.url is required for the http backend")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid segmenter.url %q", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &HTTPSegmenter{
		endpoint: cfg.URL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		limiter:   rate.NewLimiter(limit, burst),
		userAgent: cfg.UserAgent,
	}, nil
}

// Name includes the endpoint so two services never share cache entries
func (s *HTTPSegmenter) Name() string {
	return "http:" + s.endpoint
}

// Split sends all texts in one request
func (s *HTTPSegmenter) Split(ctx context.Context, texts []string) ([][]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(splitRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("segment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var decoded splitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if len(decoded.Sentences) != len(texts) {
		return nil, fmt.Errorf("%w: %d results for %d texts", ErrBadResponse, len(decoded.Sentences), len(texts))
	}

	return decoded.Sentences, nil
}
