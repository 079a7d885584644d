package walmart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dishcart/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultSearchURL is the affiliate product-search endpoint
const DefaultSearchURL = "https://developer.api.walmart.com/api-proxy/service/affil/product/v2/search"

// ClientConfig holds the knobs for the search client
type ClientConfig struct {
	SearchURL string
	Timeout   time.Duration
}

// Client executes authenticated keyword searches against the affiliate
// product-search endpoint. Signing state is immutable; every request gets a
// fresh timestamp and signature.
type Client struct {
	httpClient  *http.Client
	signer      *Signer
	searchURL   string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new affiliate search client
func NewClient(signer *Signer, config ClientConfig, logger *zap.Logger) *Client {
	searchURL := config.SearchURL
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	// Courtesy bound on outbound traffic; the affiliate program tolerates
	// short bursts but not sustained hammering
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		signer:      signer,
		searchURL:   searchURL,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// Search issues one signed keyword search and returns up to limit raw
// candidates. A 4xx "no results" response yields an empty slice, not an
// error. Timeouts and 5xx map to domain.ErrRetailerTransient; credential
// rejection maps to domain.ErrRetailerAuth. Retry is the caller's decision.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]domain.ProductCandidate, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerTransient, err)
	}

	params := url.Values{}
	params.Add("query", term)
	params.Add("numItems", strconv.Itoa(limit))
	reqURL := fmt.Sprintf("%s?%s", c.searchURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	headers, err := c.signer.Headers(timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerAuth, err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are transient from the
		// resolution's point of view
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRetailerTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.Error("affiliate API rejected credentials", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", domain.ErrRetailerAuth, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", domain.ErrRetailerTransient, resp.StatusCode)
	case resp.StatusCode >= 400:
		// "No results" style responses; empty is not an error
		c.logger.Debug("affiliate search returned no results",
			zap.String("term", term), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrRetailerTransient, err)
	}

	candidates := mapSearchItems(searchResp.Items, limit)
	c.logger.Debug("affiliate search completed",
		zap.String("term", term), zap.Int("candidates", len(candidates)))
	return candidates, nil
}
