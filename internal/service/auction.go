package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var auctionTracer = otel.Tracer("service/auction")

const (
	minBidsPerPoll = 1
	maxBidsPerPoll = 3
	bidJitter      = 0.05
)

// Rand is the randomness source for the simulator. Production uses a
// seeded math/rand generator; tests inject a deterministic one.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// lockedRand serializes access to a math/rand.Rand, which is not safe
// for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a concurrency-safe Rand seeded from seed.
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// AuctionService simulates the live notification auction. Each poll
// fabricates a small batch of winning-bid events over the currently
// active campaigns; nothing is persisted.
type AuctionService struct {
	campaigns port.CampaignStore
	slots     port.SlotStore
	brands    port.BrandStore
	rng       Rand
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewAuctionService creates a new auction simulator.
func NewAuctionService(campaigns port.CampaignStore, slots port.SlotStore, brands port.BrandStore, rng Rand, metrics *observability.Metrics, logger *zap.Logger) *AuctionService {
	return &AuctionService{
		campaigns: campaigns,
		slots:     slots,
		brands:    brands,
		rng:       rng,
		metrics:   metrics,
		logger:    logger,
	}
}

// ============================================================
// PollResults — GET /v1/auction/results
// ============================================================

// PollResults generates one batch of 1–3 winning bids. Campaigns and
// slots are drawn with replacement, so a batch may contain the same
// campaign or slot twice. An empty candidate pool yields an empty batch,
// not an error.
func (s *AuctionService) PollResults(ctx context.Context) ([]domain.Bid, error) {
	ctx, span := auctionTracer.Start(ctx, "AuctionService.PollResults")
	defer span.End()

	var (
		active []domain.Campaign
		slots  []domain.Slot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.campaigns.ActiveCampaigns(gctx)
		if err != nil {
			return fmt.Errorf("active campaigns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		slots, err = s.slots.ListSlots(gctx)
		if err != nil {
			return fmt.Errorf("list slots: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(active) == 0 || len(slots) == 0 {
		return []domain.Bid{}, nil
	}

	n := minBidsPerPoll + s.rng.Intn(maxBidsPerPoll-minBidsPerPoll+1)
	now := time.Now().UTC()

	bids := make([]domain.Bid, 0, n)
	for i := 0; i < n; i++ {
		campaign := active[s.rng.Intn(len(active))]
		slot := slots[s.rng.Intn(len(slots))]

		brand, err := s.brands.GetBrand(ctx, campaign.BrandID)
		if err != nil {
			// A campaign whose brand cannot be resolved just drops out
			// of this batch.
			s.logger.Warn("auction: skipping bid, brand lookup failed",
				zap.String("campaign_id", campaign.ID),
				zap.String("brand_id", campaign.BrandID),
				zap.Error(err),
			)
			continue
		}

		bids = append(bids, domain.Bid{
			ID:            "bid-" + uuid.NewString(),
			CampaignID:    campaign.ID,
			SlotID:        slot.ID,
			BidAmount:     jitterBid(campaign.BidAmount, s.rng),
			Timestamp:     now,
			CampaignTitle: campaign.Title,
			BrandName:     brand.CompanyName,
			BrandID:       brand.ID,
		})
	}

	s.metrics.RecordBids(len(bids))
	span.SetAttributes(attribute.Int("bids", len(bids)))
	return bids, nil
}

// jitterBid applies a uniform ±5% wobble to the campaign's nominal bid,
// so consecutive wins by the same campaign differ slightly in price.
func jitterBid(amount float64, rng Rand) float64 {
	u := rng.Float64()*2*bidJitter - bidJitter
	return amount * (1 + u)
}

// DecorateForViewer computes the viewer-relative win flag for each bid.
// The flag is derived at read time; the same batch renders differently
// for different brands.
func DecorateForViewer(bids []domain.Bid, viewerBrandID string) []domain.BidView {
	views := make([]domain.BidView, len(bids))
	for i, b := range bids {
		views[i] = domain.BidView{
			Bid:   b,
			IsWin: viewerBrandID != "" && b.BrandID == viewerBrandID,
		}
	}
	return views
}
