// Package domain defines the core business entities for the AdPulse brand
// platform. These models are independent of transport and storage and are
// the canonical data structures used throughout the API.
package domain

import "time"

// ============================================================
// Brand
// ============================================================

// Brand represents an advertiser account on the platform.
type Brand struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"companyName"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	WalletBalance  float64   `json:"walletBalance"`
	AttentionScore int       `json:"attentionScore"` // 0-100 quality gauge, display only
	CreatedAt      time.Time `json:"createdAt"`
}

// BrandUpdate carries the mutable account fields. The wallet balance is
// never user-editable; it moves only through deposits and campaign spend.
type BrandUpdate struct {
	CompanyName *string `json:"companyName,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// ============================================================
// Campaigns
// ============================================================

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignDraft   CampaignStatus = "Draft"
	CampaignPending CampaignStatus = "Pending"
	CampaignActive  CampaignStatus = "Active"
	CampaignEnded   CampaignStatus = "Ended"
)

// Valid reports whether s is one of the known campaign statuses.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignPending, CampaignActive, CampaignEnded:
		return true
	}
	return false
}

// Campaign represents a notification campaign owned by a brand.
// Only Active campaigns participate in the auction simulation.
type Campaign struct {
	ID             string         `json:"id"`
	BrandID        string         `json:"brandId"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Category       string         `json:"category"`
	BidAmount      float64        `json:"bidAmount"`
	StartTime      string         `json:"startTime"` // YYYY-MM-DD
	EndTime        string         `json:"endTime"`   // YYYY-MM-DD
	Status         CampaignStatus `json:"status"`
	Impressions    int64          `json:"impressions"`
	Clicks         int64          `json:"clicks"`
	TargetAudience string         `json:"targetAudience"`
	TotalSpent     float64        `json:"totalSpent"`
	ConversionRate float64        `json:"conversionRate"`
}

// ============================================================
// Ledger
// ============================================================

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionCredit TransactionType = "Credit"
	TransactionDebit  TransactionType = "Debit"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "Completed"
	TransactionPending   TransactionStatus = "Pending"
	TransactionFailed    TransactionStatus = "Failed"
)

// Transaction is one immutable entry in a brand's wallet ledger.
// Entries are append-only and rendered most-recent-first.
type Transaction struct {
	ID            string            `json:"id"`
	BrandID       string            `json:"brandId"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Amount        float64           `json:"amount"` // always positive; Type carries the sign
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	CampaignID    string            `json:"campaignId,omitempty"`
	InvoiceNumber string            `json:"invoiceNumber"`
}

// ============================================================
// Auction
// ============================================================

// Slot is an available ad placement. Slots belong to end users of the
// consumer app and are read-only reference data here.
type Slot struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	SlotTime string `json:"slotTime"` // e.g. "9:00 AM"
}

// Bid is a simulated auction-win event. Bids are generated fresh on every
// poll and never persisted; the display fields are denormalized so the feed
// can render without further lookups.
type Bid struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaignId"`
	SlotID        string    `json:"slotId"`
	BidAmount     float64   `json:"bidAmount"` // nominal bid with ±5% jitter applied
	Timestamp     time.Time `json:"timestamp"`
	CampaignTitle string    `json:"campaignTitle"`
	BrandName     string    `json:"brandName"`
	BrandID       string    `json:"brandId"`
}

// BidView is a Bid enriched with the viewer-relative win flag. The flag is
// computed at read time and never stored.
type BidView struct {
	Bid
	IsWin bool `json:"isWin"`
}

// FeedState is the aggregator's polling state.
type FeedState string

const (
	FeedLive   FeedState = "LIVE"
	FeedPaused FeedState = "PAUSED"
)

// FeedStatus is returned by GET /v1/auction/feed/status.
type FeedStatus struct {
	State      FeedState `json:"state"`
	WindowSize int       `json:"windowSize"`
	Interval   string    `json:"interval"`
}

// AuctionStats carries cumulative simulator counters for the dashboard.
type AuctionStats struct {
	Polls         int64 `json:"polls"`
	FailedPolls   int64 `json:"failedPolls"`
	BidsGenerated int64 `json:"bidsGenerated"`
}

// ============================================================
// Analytics
// ============================================================

// CampaignPerformance is the per-campaign slice of the analytics summary.
type CampaignPerformance struct {
	CampaignID     string  `json:"campaignId"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	CTR            float64 `json:"ctr"`
	TotalSpent     float64 `json:"totalSpent"`
	ConversionRate float64 `json:"conversionRate"`
}

// CategorySpend aggregates spend per campaign category.
type CategorySpend struct {
	Category   string  `json:"category"`
	TotalSpent float64 `json:"totalSpent"`
	Campaigns  int     `json:"campaigns"`
}

// AnalyticsSummary is returned by GET /v1/brands/{brandId}/analytics.
type AnalyticsSummary struct {
	BrandID          string                `json:"brandId"`
	AttentionScore   int                   `json:"attentionScore"`
	WalletBalance    float64               `json:"walletBalance"`
	TotalImpressions int64                 `json:"totalImpressions"`
	TotalClicks      int64                 `json:"totalClicks"`
	OverallCTR       float64               `json:"overallCtr"`
	TotalSpent       float64               `json:"totalSpent"`
	ActiveCampaigns  int                   `json:"activeCampaigns"`
	Campaigns        []CampaignPerformance `json:"campaigns"`
	ByCategory       []CategorySpend       `json:"byCategory"`
}

// ============================================================
// Auth — request / response types (frontend API contract)
// ============================================================

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /v1/auth/login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	Brand        *Brand `json:"brand"`
}

// RefreshRequest is the body for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest is the body for PUT /v1/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RefreshToken is a stored (hashed) refresh token.
type RefreshToken struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brandId"`
	TokenHash string    `json:"tokenHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	Revoked   bool      `json:"revoked"`
}

// ============================================================
// Wallet API shapes
// ============================================================

// DepositRequest is the body for POST /v1/wallet/deposit.
type DepositRequest struct {
	BrandID string  `json:"brandId"`
	Amount  float64 `json:"amount"`
}

// DepositResponse returns the updated brand snapshot after a deposit.
// The transaction list is fetched separately by the wallet view; the two
// reads are not one atomic snapshot.
type DepositResponse struct {
	Brand       *Brand       `json:"brand"`
	Transaction *Transaction `json:"transaction"`
}

// InvoiceResponse is the printable invoice data for one transaction.
type InvoiceResponse struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	IssuedAt      time.Time `json:"issuedAt"`
	CompanyName   string    `json:"companyName"`
	Email         string    `json:"email"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
}

// ============================================================
// Suggestions
// ============================================================

// SuggestionRequest is the body for POST /v1/campaigns/suggestions.
type SuggestionRequest struct {
	ProductInfo string `json:"productInfo"`
}

// SuggestionResponse carries up to three short campaign messages.
type SuggestionResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ============================================================
// Health
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth reports one dependency's health.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}
