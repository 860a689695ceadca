// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
)

// BrandStore holds brand records keyed by id.
type BrandStore interface {
	GetBrand(ctx context.Context, brandID string) (*domain.Brand, error)
	GetBrandByEmail(ctx context.Context, email string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, brand *domain.Brand) error
	UpdateBrand(ctx context.Context, brandID string, update *domain.BrandUpdate) (*domain.Brand, error)
}

// LedgerStore owns wallet balances and the append-only transaction log.
// Deposit must apply the balance increment and the ledger append as one
// atomic step: either both happen or neither does.
type LedgerStore interface {
	Deposit(ctx context.Context, brandID string, amount float64) (*domain.Brand, *domain.Transaction, error)
	ListTransactions(ctx context.Context, brandID string) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, brandID, transactionID string) (*domain.Transaction, error)
}

// CampaignStore owns campaign records. ActiveCampaigns is the read-only
// reference feed consumed by the auction simulator.
type CampaignStore interface {
	ListCampaigns(ctx context.Context, brandID string) ([]domain.Campaign, error)
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	UpdateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string) error
	ActiveCampaigns(ctx context.Context) ([]domain.Campaign, error)
}

// SlotStore exposes the available ad slots, read-only.
type SlotStore interface {
	ListSlots(ctx context.Context) ([]domain.Slot, error)
}

// AuthStore persists credentials-adjacent auth state.
type AuthStore interface {
	StoreRefreshToken(ctx context.Context, brandID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, brandID string) error
	UpdatePassword(ctx context.Context, brandID, passwordHash string) error
}

// Suggester produces short campaign message suggestions for product info.
type Suggester interface {
	Suggest(ctx context.Context, productInfo string) ([]string, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
