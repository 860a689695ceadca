// Package memstore implements every store port against process memory.
// It is the platform's mock data backend: constructed with seed data,
// resettable for tests, and serving each call with a small artificial
// latency to emulate network I/O. There is no durability — restarting the
// process restores the seed.
package memstore

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("memstore")

// Store holds all tables behind one RWMutex. Mutating operations take the
// write lock for their whole critical section, which is what makes Deposit
// (balance increment + ledger append) atomic with respect to concurrent
// deposits on the same brand.
type Store struct {
	mu sync.RWMutex

	brands        map[string]*domain.Brand
	campaigns     map[string]*domain.Campaign
	transactions  []domain.Transaction
	slots         []domain.Slot
	refreshTokens map[string]*domain.RefreshToken // keyed by token hash

	latency time.Duration
	rng     *rand.Rand
	logger  *zap.Logger
}

// New creates a store populated with the seed dataset. latency is the
// artificial per-call delay; pass 0 in tests.
func New(latency time.Duration, logger *zap.Logger) *Store {
	s := &Store{
		latency: latency,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
	}
	s.Reset()
	return s
}

// Reset discards all state and reapplies the seed dataset. Exposed for the
// dev-tools endpoint and for test isolation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.brands = make(map[string]*domain.Brand)
	s.campaigns = make(map[string]*domain.Campaign)
	s.transactions = nil
	s.refreshTokens = make(map[string]*domain.RefreshToken)

	seed(s)
	s.logger.Debug("memstore reset to seed data",
		zap.Int("brands", len(s.brands)),
		zap.Int("campaigns", len(s.campaigns)),
		zap.Int("transactions", len(s.transactions)),
		zap.Int("slots", len(s.slots)),
	)
}

// simulate injects the artificial request latency, honouring cancellation.
func (s *Store) simulate(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

const invoiceSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// invoiceNumber builds an INV-YYYYMMDD-XXXXX invoice number. Uniqueness
// rests on the 36^5 suffix space; collisions are possible but accepted.
func (s *Store) invoiceNumber(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = invoiceSuffixChars[s.rng.Intn(len(invoiceSuffixChars))]
	}
	return "INV-" + now.Format("20060102") + "-" + string(suffix)
}

// copyBrand returns a detached snapshot so callers can never mutate the
// stored record through the returned pointer.
func copyBrand(b *domain.Brand) *domain.Brand {
	c := *b
	return &c
}

func copyCampaign(c *domain.Campaign) *domain.Campaign {
	cp := *c
	return &cp
}
