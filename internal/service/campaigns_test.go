package service_test

import (
	"context"
	"testing"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/memstore"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCampaignService() (*service.CampaignService, *memstore.Store) {
	store := memstore.New(0, zap.NewNop())
	return service.NewCampaignService(store, zap.NewNop()), store
}

func validDraft() *domain.Campaign {
	return &domain.Campaign{
		Title:     "Autumn Push",
		Message:   "Cozy season deals are here.",
		Category:  "Retail",
		BidAmount: 0.45,
		StartTime: "2024-09-01",
		EndTime:   "2024-09-30",
	}
}

func TestCreateCampaignDefaults(t *testing.T) {
	svc, _ := newCampaignService()

	c := validDraft()
	c.Impressions = 99999 // client-sent counters are ignored
	created, err := svc.CreateCampaign(context.Background(), "brand-1", c)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "brand-1", created.BrandID)
	assert.Equal(t, domain.CampaignDraft, created.Status)
	assert.Zero(t, created.Impressions)
	assert.Zero(t, created.TotalSpent)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc, _ := newCampaignService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.Campaign)
	}{
		{"empty title", func(c *domain.Campaign) { c.Title = " " }},
		{"empty message", func(c *domain.Campaign) { c.Message = "" }},
		{"zero bid", func(c *domain.Campaign) { c.BidAmount = 0 }},
		{"bad start date", func(c *domain.Campaign) { c.StartTime = "01/09/2024" }},
		{"end before start", func(c *domain.Campaign) { c.EndTime = "2024-08-01" }},
		{"unknown status", func(c *domain.Campaign) { c.Status = "Archived" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validDraft()
			tc.mutate(c)
			_, err := svc.CreateCampaign(ctx, "brand-1", c)
			var verr *domain.ErrValidation
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestGetCampaignOwnership(t *testing.T) {
	svc, _ := newCampaignService()
	ctx := context.Background()

	c, err := svc.GetCampaign(ctx, "brand-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale Kickoff", c.Title)

	// camp-3 belongs to brand-2; brand-1 sees not-found, not forbidden.
	_, err = svc.GetCampaign(ctx, "brand-1", "camp-3")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateCampaignKeepsCounters(t *testing.T) {
	svc, _ := newCampaignService()
	ctx := context.Background()

	c, err := svc.GetCampaign(ctx, "brand-1", "camp-1")
	require.NoError(t, err)

	c.Title = "Summer Sale Extended"
	c.Impressions = 1 // must be ignored
	updated, err := svc.UpdateCampaign(ctx, "brand-1", c)
	require.NoError(t, err)

	assert.Equal(t, "Summer Sale Extended", updated.Title)
	assert.Equal(t, int64(150000), updated.Impressions)
	assert.Equal(t, 2250.00, updated.TotalSpent)
}

func TestDeleteCampaignOwnership(t *testing.T) {
	svc, store := newCampaignService()
	ctx := context.Background()

	err := svc.DeleteCampaign(ctx, "brand-1", "camp-3")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, svc.DeleteCampaign(ctx, "brand-1", "camp-4"))
	_, err = store.GetCampaign(ctx, "camp-4")
	require.Error(t, err)
}
