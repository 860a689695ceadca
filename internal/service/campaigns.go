package service

import (
	"context"
	"strings"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var campaignTracer = otel.Tracer("service/campaigns")

// CampaignService manages the campaign lifecycle. Every mutating
// operation checks that the campaign belongs to the calling brand.
type CampaignService struct {
	store  port.CampaignStore
	logger *zap.Logger
}

// NewCampaignService creates a new campaign service.
func NewCampaignService(store port.CampaignStore, logger *zap.Logger) *CampaignService {
	return &CampaignService{store: store, logger: logger}
}

// ============================================================
// List / Get
// ============================================================

func (s *CampaignService) ListCampaigns(ctx context.Context, brandID string) ([]domain.Campaign, error) {
	ctx, span := campaignTracer.Start(ctx, "CampaignService.ListCampaigns")
	defer span.End()

	return s.store.ListCampaigns(ctx, brandID)
}

func (s *CampaignService) GetCampaign(ctx context.Context, brandID, campaignID string) (*domain.Campaign, error) {
	ctx, span := campaignTracer.Start(ctx, "CampaignService.GetCampaign")
	defer span.End()

	c, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.BrandID != brandID {
		// Hide other brands' campaigns rather than admit they exist.
		return nil, &domain.ErrNotFound{Resource: "campaign", ID: campaignID}
	}
	return c, nil
}

// ============================================================
// Create — POST /v1/campaigns
// ============================================================

func (s *CampaignService) CreateCampaign(ctx context.Context, brandID string, c *domain.Campaign) (*domain.Campaign, error) {
	ctx, span := campaignTracer.Start(ctx, "CampaignService.CreateCampaign")
	defer span.End()
	span.SetAttributes(attribute.String("brand_id", brandID))

	if err := validateCampaign(c); err != nil {
		return nil, err
	}

	c.ID = ""
	c.BrandID = brandID
	if c.Status == "" {
		c.Status = domain.CampaignDraft
	}
	// Counters always start at zero, whatever the client sent.
	c.Impressions = 0
	c.Clicks = 0
	c.TotalSpent = 0
	c.ConversionRate = 0

	created, err := s.store.CreateCampaign(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Info("campaign created",
		zap.String("campaign_id", created.ID),
		zap.String("brand_id", brandID),
		zap.String("status", string(created.Status)),
	)
	return created, nil
}

// ============================================================
// Update — PUT /v1/campaigns/{id}
// ============================================================

func (s *CampaignService) UpdateCampaign(ctx context.Context, brandID string, c *domain.Campaign) (*domain.Campaign, error) {
	ctx, span := campaignTracer.Start(ctx, "CampaignService.UpdateCampaign")
	defer span.End()

	existing, err := s.GetCampaign(ctx, brandID, c.ID)
	if err != nil {
		return nil, err
	}
	if err := validateCampaign(c); err != nil {
		return nil, err
	}

	// Ownership and performance counters are server-managed.
	c.BrandID = existing.BrandID
	c.Impressions = existing.Impressions
	c.Clicks = existing.Clicks
	c.TotalSpent = existing.TotalSpent
	c.ConversionRate = existing.ConversionRate

	updated, err := s.store.UpdateCampaign(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Info("campaign updated",
		zap.String("campaign_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

// ============================================================
// Delete — DELETE /v1/campaigns/{id}
// ============================================================

func (s *CampaignService) DeleteCampaign(ctx context.Context, brandID, campaignID string) error {
	ctx, span := campaignTracer.Start(ctx, "CampaignService.DeleteCampaign")
	defer span.End()

	if _, err := s.GetCampaign(ctx, brandID, campaignID); err != nil {
		return err
	}
	if err := s.store.DeleteCampaign(ctx, campaignID); err != nil {
		return err
	}

	s.logger.Info("campaign deleted",
		zap.String("campaign_id", campaignID),
		zap.String("brand_id", brandID),
	)
	return nil
}

// ============================================================
// Validation
// ============================================================

const campaignDateLayout = "2006-01-02"

func validateCampaign(c *domain.Campaign) error {
	if strings.TrimSpace(c.Title) == "" {
		return &domain.ErrValidation{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(c.Message) == "" {
		return &domain.ErrValidation{Field: "message", Message: "message is required"}
	}
	if c.BidAmount <= 0 {
		return &domain.ErrValidation{Field: "bidAmount", Message: "bid amount must be positive"}
	}
	if c.Status != "" && !c.Status.Valid() {
		return &domain.ErrValidation{Field: "status", Message: "unknown campaign status"}
	}

	start, err := time.Parse(campaignDateLayout, c.StartTime)
	if err != nil {
		return &domain.ErrValidation{Field: "startTime", Message: "must be YYYY-MM-DD"}
	}
	end, err := time.Parse(campaignDateLayout, c.EndTime)
	if err != nil {
		return &domain.ErrValidation{Field: "endTime", Message: "must be YYYY-MM-DD"}
	}
	if end.Before(start) {
		return &domain.ErrValidation{Field: "endTime", Message: "end date precedes start date"}
	}
	return nil
}
