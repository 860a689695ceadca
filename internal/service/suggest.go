package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var suggestTracer = otel.Tracer("service/suggest")

const maxSuggestions = 3

// Campaign copy shown when the text-generation service is unavailable.
// The dashboard degrades to these instead of surfacing an error.
var fallbackSuggestions = []string{
	"Don't miss out! Limited-time offers on our best products.",
	"Discover something new today. Tap to see what's trending.",
	"Your next favorite is waiting. Shop the latest arrivals now.",
}

// SuggestionService produces short campaign message suggestions from
// free-form product info, caching results per prompt.
type SuggestionService struct {
	suggester port.Suggester
	cache     port.Cache[[]string]
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewSuggestionService creates a new suggestion service.
func NewSuggestionService(suggester port.Suggester, cache port.Cache[[]string], metrics *observability.Metrics, logger *zap.Logger) *SuggestionService {
	return &SuggestionService{
		suggester: suggester,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// Suggest returns up to three campaign messages for the product info.
// Failures of the upstream generator degrade to canned copy; the caller
// always receives suggestions.
func (s *SuggestionService) Suggest(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error) {
	ctx, span := suggestTracer.Start(ctx, "SuggestionService.Suggest")
	defer span.End()

	info := strings.TrimSpace(req.ProductInfo)
	if info == "" {
		return nil, &domain.ErrValidation{Field: "productInfo", Message: "product info is required"}
	}

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("suggest", time.Since(start))
	}()

	cacheKey := "suggest:" + promptKey(info)
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("suggestions")
		return &domain.SuggestionResponse{Suggestions: cached}, nil
	}
	s.metrics.IncrCacheMiss("suggestions")

	suggestions, err := s.suggester.Suggest(ctx, info)
	if err != nil {
		s.metrics.IncrExternalError("suggest")
		s.logger.Warn("suggestion generator unavailable, serving fallback",
			zap.Error(err),
		)
		return &domain.SuggestionResponse{Suggestions: fallbackSuggestions}, nil
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	s.cache.Set(cacheKey, suggestions)
	return &domain.SuggestionResponse{Suggestions: suggestions}, nil
}

// promptKey hashes the prompt so arbitrarily long product blurbs make
// bounded cache keys.
func promptKey(info string) string {
	h := sha256.Sum256([]byte(strings.ToLower(info)))
	return hex.EncodeToString(h[:8])
}
