package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var analyticsTracer = otel.Tracer("service/analytics")

// AnalyticsService aggregates a brand's performance figures from its
// campaigns. Everything is derived on the fly from the stores.
type AnalyticsService struct {
	brands    port.BrandStore
	campaigns port.CampaignStore
	logger    *zap.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(brands port.BrandStore, campaigns port.CampaignStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{brands: brands, campaigns: campaigns, logger: logger}
}

// GetSummary fans out to the brand and campaign stores concurrently and
// folds the results into one dashboard summary.
func (s *AnalyticsService) GetSummary(ctx context.Context, brandID string) (*domain.AnalyticsSummary, error) {
	ctx, span := analyticsTracer.Start(ctx, "AnalyticsService.GetSummary")
	defer span.End()

	var (
		brand     *domain.Brand
		campaigns []domain.Campaign
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		brand, err = s.brands.GetBrand(gctx, brandID)
		if err != nil {
			return fmt.Errorf("get brand: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		campaigns, err = s.campaigns.ListCampaigns(gctx, brandID)
		if err != nil {
			return fmt.Errorf("list campaigns: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &domain.AnalyticsSummary{
		BrandID:        brand.ID,
		AttentionScore: brand.AttentionScore,
		WalletBalance:  brand.WalletBalance,
		Campaigns:      make([]domain.CampaignPerformance, 0, len(campaigns)),
	}

	byCategory := make(map[string]*domain.CategorySpend)
	for _, c := range campaigns {
		perf := domain.CampaignPerformance{
			CampaignID:     c.ID,
			Title:          c.Title,
			Status:         string(c.Status),
			Impressions:    c.Impressions,
			Clicks:         c.Clicks,
			TotalSpent:     c.TotalSpent,
			ConversionRate: c.ConversionRate,
		}
		if c.Impressions > 0 {
			perf.CTR = float64(c.Clicks) / float64(c.Impressions)
		}
		summary.Campaigns = append(summary.Campaigns, perf)

		summary.TotalImpressions += c.Impressions
		summary.TotalClicks += c.Clicks
		summary.TotalSpent += c.TotalSpent
		if c.Status == domain.CampaignActive {
			summary.ActiveCampaigns++
		}

		cs, ok := byCategory[c.Category]
		if !ok {
			cs = &domain.CategorySpend{Category: c.Category}
			byCategory[c.Category] = cs
		}
		cs.TotalSpent += c.TotalSpent
		cs.Campaigns++
	}

	if summary.TotalImpressions > 0 {
		summary.OverallCTR = float64(summary.TotalClicks) / float64(summary.TotalImpressions)
	}

	summary.ByCategory = make([]domain.CategorySpend, 0, len(byCategory))
	for _, cs := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *cs)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary, nil
}
