// Package client holds HTTP clients for external services, wrapped in
// the shared resilience stack (retry with backoff, circuit breaker,
// bulkhead).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// SuggestClient calls the external text-generation service that writes
// campaign message suggestions.
type SuggestClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
}

// NewSuggestClient creates a new SuggestClient.
func NewSuggestClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, bulkhead *resilience.Bulkhead, cfg resilience.Config) *SuggestClient {
	return &SuggestClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		bulkhead:   bulkhead,
		cfg:        cfg,
	}
}

type suggestRequest struct {
	ProductInfo string `json:"productInfo"`
	Count       int    `json:"count"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest asks the generator for campaign copy. Errors are wrapped as
// ErrExternalService; the caller decides whether to degrade.
func (c *SuggestClient) Suggest(ctx context.Context, productInfo string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "SuggestClient.Suggest")
	defer span.End()
	span.SetAttributes(attribute.Int("product_info.len", len(productInfo)))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrExternalService{Service: "suggest", Err: err}
	}
	defer c.bulkhead.Release()

	var out suggestResponse

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(suggestRequest{ProductInfo: productInfo, Count: 3})
			if err != nil {
				return err
			}

			url := fmt.Sprintf("%s/v1/suggestions", c.baseURL)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("suggest API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&out)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return out.Suggestions, nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "suggest", Err: err}
	}

	return result.([]string), nil
}
