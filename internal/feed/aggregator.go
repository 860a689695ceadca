// Package feed maintains the rolling window of live auction events. An
// aggregator polls the auction simulator on a fixed interval and keeps
// the most recent results for the dashboard to read.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/service"

	"go.uber.org/zap"
)

// Poller produces one batch of auction events per call.
type Poller interface {
	PollResults(ctx context.Context) ([]domain.Bid, error)
}

// Aggregator polls on a ticker and folds batches into a bounded,
// most-recent-first window. Polls run asynchronously: a tick fires even
// while a previous poll is still in flight, and batches land in
// completion order, not dispatch order.
type Aggregator struct {
	poller   Poller
	interval time.Duration
	capacity int
	metrics  *observability.Metrics
	logger   *zap.Logger

	mu      sync.Mutex
	entries []domain.Bid
	state   domain.FeedState
	// gen is bumped on every pause; a poll started under an older gen
	// discards its batch on completion.
	gen uint64

	resumeCh chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// New creates an aggregator. capacity is the maximum window size.
func New(poller Poller, interval time.Duration, capacity int, metrics *observability.Metrics, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		poller:   poller,
		interval: interval,
		capacity: capacity,
		metrics:  metrics,
		logger:   logger,
		state:    domain.FeedLive,
		resumeCh: make(chan struct{}, 1),
	}
}

// Start launches the polling loop. It polls once immediately so the feed
// is never empty for a full interval after boot.
func (a *Aggregator) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})

	go a.run(ctx)
	a.logger.Info("feed aggregator started",
		zap.Duration("interval", a.interval),
		zap.Int("capacity", a.capacity),
	)
}

// Stop terminates the polling loop and waits for it to exit. In-flight
// polls are cancelled through the loop context.
func (a *Aggregator) Stop() {
	a.stopOnce.Do(func() {
		a.cancel()
		<-a.done
		a.logger.Info("feed aggregator stopped")
	})
}

func (a *Aggregator) run(ctx context.Context) {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.dispatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.resumeCh:
			// Resuming polls immediately and restarts the cadence, the
			// same as a dashboard tab coming back into focus.
			a.dispatch(ctx)
			ticker.Reset(a.interval)
		case <-ticker.C:
			a.dispatch(ctx)
		}
	}
}

// dispatch launches one asynchronous poll unless the feed is paused.
func (a *Aggregator) dispatch(ctx context.Context) {
	a.mu.Lock()
	if a.state != domain.FeedLive {
		a.mu.Unlock()
		a.metrics.RecordFeedPoll("skipped")
		return
	}
	gen := a.gen
	a.mu.Unlock()

	go a.poll(ctx, gen)
}

func (a *Aggregator) poll(ctx context.Context, gen uint64) {
	bids, err := a.poller.PollResults(ctx)
	if err != nil {
		if ctx.Err() == nil {
			a.metrics.RecordFeedPoll("error")
			a.logger.Error("feed poll failed", zap.Error(err))
		}
		return
	}
	a.metrics.RecordFeedPoll("ok")

	a.mu.Lock()
	defer a.mu.Unlock()

	// The feed was paused (or paused and resumed) while this poll was in
	// flight; its batch belongs to a superseded session.
	if gen != a.gen || a.state != domain.FeedLive {
		return
	}

	a.entries = append(bids, a.entries...)
	if len(a.entries) > a.capacity {
		a.entries = a.entries[:a.capacity]
	}
	a.metrics.SetFeedWindow(len(a.entries))
}

// Pause freezes the window. Ticks keep firing but produce no polls, and
// any in-flight poll's batch is discarded when it completes.
func (a *Aggregator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == domain.FeedPaused {
		return
	}
	a.state = domain.FeedPaused
	a.gen++
	a.logger.Info("feed paused", zap.Int("window", len(a.entries)))
}

// Resume restarts live polling with an immediate poll. The frozen window
// is kept; fresh events are prepended to it.
func (a *Aggregator) Resume() {
	a.mu.Lock()
	if a.state == domain.FeedLive {
		a.mu.Unlock()
		return
	}
	a.state = domain.FeedLive
	a.mu.Unlock()

	select {
	case a.resumeCh <- struct{}{}:
	default:
	}
	a.logger.Info("feed resumed")
}

// Snapshot returns a copy of the current window decorated with the
// viewer's win flags, most recent first.
func (a *Aggregator) Snapshot(viewerBrandID string) []domain.BidView {
	a.mu.Lock()
	entries := make([]domain.Bid, len(a.entries))
	copy(entries, a.entries)
	a.mu.Unlock()

	return service.DecorateForViewer(entries, viewerBrandID)
}

// Status reports the aggregator's polling state and window occupancy.
func (a *Aggregator) Status() *domain.FeedStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	return &domain.FeedStatus{
		State:      a.state,
		WindowSize: len(a.entries),
		Interval:   a.interval.String(),
	}
}
