package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/cache"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSuggester struct {
	suggestions []string
	err         error
	calls       int
}

func (m *mockSuggester) Suggest(_ context.Context, _ string) ([]string, error) {
	m.calls++
	return m.suggestions, m.err
}

func newSuggestionService(m *mockSuggester) *service.SuggestionService {
	return service.NewSuggestionService(m, cache.New[[]string](time.Minute), observability.NewMetrics(), zap.NewNop())
}

func TestSuggestSuccess(t *testing.T) {
	mock := &mockSuggester{suggestions: []string{"Buy now!", "Big sale.", "New drop.", "Fourth one"}}
	svc := newSuggestionService(mock)

	resp, err := svc.Suggest(context.Background(), &domain.SuggestionRequest{ProductInfo: "handmade ceramic mugs"})
	require.NoError(t, err)
	// Capped at three even when the generator returns more.
	assert.Len(t, resp.Suggestions, 3)
}

func TestSuggestFallbackOnError(t *testing.T) {
	mock := &mockSuggester{err: errors.New("upstream down")}
	svc := newSuggestionService(mock)

	resp, err := svc.Suggest(context.Background(), &domain.SuggestionRequest{ProductInfo: "wireless earbuds"})
	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 3)
	assert.NotEmpty(t, resp.Suggestions[0])
}

func TestSuggestCaching(t *testing.T) {
	mock := &mockSuggester{suggestions: []string{"One", "Two"}}
	svc := newSuggestionService(mock)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, &domain.SuggestionRequest{ProductInfo: "vegan protein bars"})
	require.NoError(t, err)
	_, err = svc.Suggest(ctx, &domain.SuggestionRequest{ProductInfo: "Vegan Protein Bars"})
	require.NoError(t, err)

	// Same prompt modulo case hits the cache.
	assert.Equal(t, 1, mock.calls)
}

func TestSuggestEmptyProductInfo(t *testing.T) {
	svc := newSuggestionService(&mockSuggester{})

	_, err := svc.Suggest(context.Background(), &domain.SuggestionRequest{ProductInfo: "   "})
	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
}
