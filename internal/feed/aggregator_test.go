package feed_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/feed"
	"github.com/adpulse/adpulse-api/internal/infra/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seqPoller emits numbered batches so ordering is checkable. When gate is
// non-nil every call blocks until the gate is closed.
type seqPoller struct {
	mu    sync.Mutex
	next  int
	batch int
	gate  chan struct{}
}

func (p *seqPoller) PollResults(ctx context.Context) ([]domain.Bid, error) {
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bids := make([]domain.Bid, p.batch)
	for i := range bids {
		bids[i] = domain.Bid{
			ID:        fmt.Sprintf("bid-%04d", p.next),
			BrandID:   "brand-1",
			Timestamp: time.Now(),
		}
		p.next++
	}
	return bids, nil
}

func (p *seqPoller) polled() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

func newAggregator(p feed.Poller, interval time.Duration, capacity int) *feed.Aggregator {
	return feed.New(p, interval, capacity, observability.NewMetrics(), zap.NewNop())
}

func TestWindowBounded(t *testing.T) {
	poller := &seqPoller{batch: 3}
	agg := newAggregator(poller, 2*time.Millisecond, 5)
	agg.Start()
	defer agg.Stop()

	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) == 5
	}, time.Second, time.Millisecond)

	// The window never grows past capacity however long polling runs.
	time.Sleep(20 * time.Millisecond)
	snapshot := agg.Snapshot("")
	assert.Len(t, snapshot, 5)

	// Most recent first: ids are monotonically increasing, so the head
	// must sort above the tail.
	assert.Greater(t, snapshot[0].ID, snapshot[4].ID)
}

func TestStartPollsImmediately(t *testing.T) {
	poller := &seqPoller{batch: 2}
	agg := newAggregator(poller, time.Hour, 50)
	agg.Start()
	defer agg.Stop()

	// Only the startup poll can have run; the first tick is an hour out.
	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) == 2
	}, time.Second, time.Millisecond)
}

func TestPauseFreezesWindow(t *testing.T) {
	poller := &seqPoller{batch: 3}
	agg := newAggregator(poller, 2*time.Millisecond, 50)
	agg.Start()
	defer agg.Stop()

	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) > 0
	}, time.Second, time.Millisecond)

	agg.Pause()
	frozen := len(agg.Snapshot(""))
	assert.Equal(t, domain.FeedPaused, agg.Status().State)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, len(agg.Snapshot("")), "window changed while paused")
}

func TestResumeRestartsPolling(t *testing.T) {
	poller := &seqPoller{batch: 1}
	agg := newAggregator(poller, time.Hour, 50)
	agg.Start()
	defer agg.Stop()

	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) == 1
	}, time.Second, time.Millisecond)

	agg.Pause()
	agg.Resume()
	assert.Equal(t, domain.FeedLive, agg.Status().State)

	// Resume polls immediately rather than waiting out the interval.
	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) == 2
	}, time.Second, time.Millisecond)
}

func TestLateBatchDiscardedAfterPause(t *testing.T) {
	gate := make(chan struct{})
	poller := &seqPoller{batch: 3, gate: gate}
	agg := newAggregator(poller, time.Hour, 50)
	agg.Start()
	defer agg.Stop()

	// The startup poll is now blocked in flight. Pausing before it
	// completes must void its batch.
	agg.Pause()
	close(gate)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, agg.Snapshot(""), "stale batch landed after pause")

	// Resuming does not resurrect the discarded batch either.
	agg.Resume()
	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) == 3
	}, time.Second, time.Millisecond)
}

func TestSnapshotWinFlags(t *testing.T) {
	poller := &seqPoller{batch: 2}
	agg := newAggregator(poller, time.Hour, 50)
	agg.Start()
	defer agg.Stop()

	require.Eventually(t, func() bool {
		return len(agg.Snapshot("")) == 2
	}, time.Second, time.Millisecond)

	for _, v := range agg.Snapshot("brand-1") {
		assert.True(t, v.IsWin)
	}
	for _, v := range agg.Snapshot("brand-2") {
		assert.False(t, v.IsWin)
	}
}

func TestStatus(t *testing.T) {
	agg := newAggregator(&seqPoller{batch: 1}, 3*time.Second, 50)

	status := agg.Status()
	assert.Equal(t, domain.FeedLive, status.State)
	assert.Equal(t, 0, status.WindowSize)
	assert.Equal(t, "3s", status.Interval)
}
