package service_test

import (
	"context"
	"testing"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/memstore"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedRand replays fixed values so batch size and picks are known.
type scriptedRand struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

func newAuctionService(rng service.Rand) (*service.AuctionService, *memstore.Store) {
	store := memstore.New(0, zap.NewNop())
	svc := service.NewAuctionService(store, store, store, rng, observability.NewMetrics(), zap.NewNop())
	return svc, store
}

func TestPollResultsBatch(t *testing.T) {
	// First Intn picks the batch size offset (2 → 3 bids), the rest pick
	// campaigns and slots; Float64 = 0.5 means zero jitter.
	rng := &scriptedRand{ints: []int{2, 0, 0, 1, 1, 0, 2}, floats: []float64{0.5}}
	svc, _ := newAuctionService(rng)

	bids, err := svc.PollResults(context.Background())
	require.NoError(t, err)
	require.Len(t, bids, 3)

	for _, b := range bids {
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.CampaignID)
		assert.NotEmpty(t, b.SlotID)
		assert.NotEmpty(t, b.CampaignTitle)
		assert.NotEmpty(t, b.BrandName)
		assert.NotEmpty(t, b.BrandID)
		assert.False(t, b.Timestamp.IsZero())
		assert.Greater(t, b.BidAmount, 0.0)
	}
}

func TestPollResultsJitterBounds(t *testing.T) {
	// Seed campaigns camp-1 (0.75) and camp-5 (0.60) are active; every
	// jittered amount must stay within ±5% of a nominal bid.
	svc, _ := newAuctionService(service.NewRand(42))
	ctx := context.Background()

	nominal := map[string]float64{"camp-1": 0.75, "camp-5": 0.60}
	for i := 0; i < 100; i++ {
		bids, err := svc.PollResults(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, bids)
		assert.LessOrEqual(t, len(bids), 3)

		for _, b := range bids {
			base, ok := nominal[b.CampaignID]
			require.True(t, ok, "unexpected campaign %s", b.CampaignID)
			assert.GreaterOrEqual(t, b.BidAmount, base*0.95-1e-9)
			assert.LessOrEqual(t, b.BidAmount, base*1.05+1e-9)
		}
	}
}

func TestPollResultsEmptyPool(t *testing.T) {
	svc, store := newAuctionService(service.NewRand(1))
	ctx := context.Background()

	// End every active campaign; the simulator has nothing to draw from.
	for _, id := range []string{"camp-1", "camp-5"} {
		c, err := store.GetCampaign(ctx, id)
		require.NoError(t, err)
		c.Status = domain.CampaignEnded
		_, err = store.UpdateCampaign(ctx, c)
		require.NoError(t, err)
	}

	bids, err := svc.PollResults(ctx)
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestPollResultsFreshEachPoll(t *testing.T) {
	svc, _ := newAuctionService(service.NewRand(7))
	ctx := context.Background()

	first, err := svc.PollResults(ctx)
	require.NoError(t, err)
	second, err := svc.PollResults(ctx)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, b := range first {
		seen[b.ID] = true
	}
	for _, b := range second {
		assert.False(t, seen[b.ID], "bid id reused across polls")
	}
}

func TestDecorateForViewer(t *testing.T) {
	bids := []domain.Bid{
		{ID: "bid-1", BrandID: "brand-1"},
		{ID: "bid-2", BrandID: "brand-2"},
	}

	views := service.DecorateForViewer(bids, "brand-1")
	require.Len(t, views, 2)
	assert.True(t, views[0].IsWin)
	assert.False(t, views[1].IsWin)

	// Anonymous viewers never see a win highlight.
	for _, v := range service.DecorateForViewer(bids, "") {
		assert.False(t, v.IsWin)
	}
}
