package memstore

import (
	"context"
	"sort"

	"github.com/adpulse/adpulse-api/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// Campaigns — port.CampaignStore
// ============================================================

func (s *Store) ListCampaigns(ctx context.Context, brandID string) ([]domain.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Memstore.ListCampaigns")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Campaign
	for _, c := range s.campaigns {
		if c.BrandID == brandID {
			out = append(out, *c)
		}
	}
	// Map iteration order is random; keep the listing stable for the UI.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Memstore.GetCampaign")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "campaign", ID: campaignID}
	}
	return copyCampaign(c), nil
}

func (s *Store) CreateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Memstore.CreateCampaign")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyCampaign(campaign)
	if stored.ID == "" {
		stored.ID = "camp-" + uuid.NewString()
	}
	s.campaigns[stored.ID] = stored
	return copyCampaign(stored), nil
}

func (s *Store) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Memstore.UpdateCampaign")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[campaign.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "campaign", ID: campaign.ID}
	}
	s.campaigns[campaign.ID] = copyCampaign(campaign)
	return copyCampaign(campaign), nil
}

func (s *Store) DeleteCampaign(ctx context.Context, campaignID string) error {
	ctx, span := tracer.Start(ctx, "Memstore.DeleteCampaign")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[campaignID]; !ok {
		return &domain.ErrNotFound{Resource: "campaign", ID: campaignID}
	}
	delete(s.campaigns, campaignID)
	return nil
}

// ActiveCampaigns returns every campaign currently in the Active state,
// across all brands. This is the candidate pool for the auction simulator.
func (s *Store) ActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Memstore.ActiveCampaigns")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Campaign
	for _, c := range s.campaigns {
		if c.Status == domain.CampaignActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ============================================================
// Slots — port.SlotStore
// ============================================================

func (s *Store) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	ctx, span := tracer.Start(ctx, "Memstore.ListSlots")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Slot, len(s.slots))
	copy(out, s.slots)
	return out, nil
}
