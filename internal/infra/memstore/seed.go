package memstore

import (
	"sync"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func mustDate(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic("memstore: bad seed date " + v)
	}
	return t
}

var hashOnce sync.Once
var seedHashes map[string]string

// seedHash hashes the demo credentials once per process. MinCost keeps
// Reset cheap; these are fixture accounts, not real users.
func seedHash(password string) string {
	hashOnce.Do(func() {
		seedHashes = make(map[string]string)
		for _, pw := range []string{"pass123", "password", "green"} {
			h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
			if err != nil {
				panic("memstore: seed hash: " + err.Error())
			}
			seedHashes[pw] = string(h)
		}
	})
	return seedHashes[password]
}

// seed loads the fixture dataset. Passwords are bcrypt hashes of the demo
// credentials ("pass123", "password", "green") so the login flow works
// against the seed out of the box. Caller holds the write lock.
func seed(s *Store) {
	brands := []*domain.Brand{
		{
			ID:             "brand-1",
			CompanyName:    "Starlight Inc.",
			Email:          "contact@starlight.co",
			PasswordHash:   seedHash("pass123"),
			WalletBalance:  7500.50,
			AttentionScore: 88,
			CreatedAt:      mustDate("2023-01-15"),
		},
		{
			ID:             "brand-2",
			CompanyName:    "QuantumLeap Tech",
			Email:          "hello@quantumleap.tech",
			PasswordHash:   seedHash("password"),
			WalletBalance:  12340.00,
			AttentionScore: 92,
			CreatedAt:      mustDate("2023-03-22"),
		},
		{
			ID:             "brand-3",
			CompanyName:    "Evergreen Goods",
			Email:          "support@evergreen.com",
			PasswordHash:   seedHash("green"),
			WalletBalance:  4200.75,
			AttentionScore: 85,
			CreatedAt:      mustDate("2023-05-10"),
		},
	}
	for _, b := range brands {
		s.brands[b.ID] = b
	}

	campaigns := []*domain.Campaign{
		{
			ID: "camp-1", BrandID: "brand-1",
			Title:    "Summer Sale Kickoff",
			Message:  "Get up to 50% off on all summer essentials!",
			Category: "Retail", BidAmount: 0.75,
			StartTime: "2024-06-01", EndTime: "2024-08-30",
			Status:      domain.CampaignActive,
			Impressions: 150000, Clicks: 7500,
			TargetAudience: "Ages 18-35, fashion",
			TotalSpent:     2250.00, ConversionRate: 0.05,
		},
		{
			ID: "camp-2", BrandID: "brand-1",
			Title:    "New Gadget Launch",
			Message:  "Introducing the new AstroPod Max. Pre-order now!",
			Category: "Electronics", BidAmount: 1.20,
			StartTime: "2024-07-01", EndTime: "2024-07-15",
			Status:         domain.CampaignPending,
			TargetAudience: "Tech enthusiasts",
		},
		{
			ID: "camp-3", BrandID: "brand-2",
			Title:    "AI Conference 2024",
			Message:  "Join the brightest minds in AI. Tickets available.",
			Category: "Tech", BidAmount: 2.50,
			StartTime: "2024-05-10", EndTime: "2024-05-25",
			Status:      domain.CampaignEnded,
			Impressions: 80000, Clicks: 3200,
			TargetAudience: "AI/ML Developers",
			TotalSpent:     4000.00, ConversionRate: 0.02,
		},
		{
			ID: "camp-4", BrandID: "brand-1",
			Title:    "Holiday Special Draft",
			Message:  "Secret holiday message here.",
			Category: "Retail", BidAmount: 1.00,
			StartTime: "2024-12-01", EndTime: "2024-12-25",
			Status:         domain.CampaignDraft,
			TargetAudience: "All Customers",
		},
		{
			ID: "camp-5", BrandID: "brand-3",
			Title:    "Organic Produce Box",
			Message:  "Fresh, organic vegetables delivered to your door.",
			Category: "Groceries", BidAmount: 0.60,
			StartTime: "2024-06-15", EndTime: "2024-07-15",
			Status:      domain.CampaignActive,
			Impressions: 45000, Clicks: 4500,
			TargetAudience: "Health-conscious families",
			TotalSpent:     900.00, ConversionRate: 0.10,
		},
	}
	for _, c := range campaigns {
		s.campaigns[c.ID] = c
	}

	s.transactions = []domain.Transaction{
		{
			ID: "tx-1", BrandID: "brand-1", Date: mustDate("2024-06-01"),
			Description: "Campaign Spend: Summer Sale", Amount: 150.00,
			Type: domain.TransactionDebit, Status: domain.TransactionCompleted,
			CampaignID: "camp-1", InvoiceNumber: "INV-20240601-001",
		},
		{
			ID: "tx-2", BrandID: "brand-1", Date: mustDate("2024-05-28"),
			Description: "Wallet Deposit", Amount: 5000.00,
			Type: domain.TransactionCredit, Status: domain.TransactionCompleted,
			InvoiceNumber: "INV-20240528-001",
		},
		{
			ID: "tx-3", BrandID: "brand-2", Date: mustDate("2024-05-15"),
			Description: "Campaign Spend: AI Conference", Amount: 2500.00,
			Type: domain.TransactionDebit, Status: domain.TransactionCompleted,
			CampaignID: "camp-3", InvoiceNumber: "INV-20240515-001",
		},
		{
			ID: "tx-4", BrandID: "brand-1", Date: mustDate("2024-06-02"),
			Description: "Campaign Spend: Summer Sale", Amount: 175.50,
			Type: domain.TransactionDebit, Status: domain.TransactionCompleted,
			CampaignID: "camp-1", InvoiceNumber: "INV-20240602-001",
		},
		{
			ID: "tx-5", BrandID: "brand-3", Date: mustDate("2024-06-15"),
			Description: "Initial Deposit", Amount: 6000.00,
			Type: domain.TransactionCredit, Status: domain.TransactionCompleted,
			InvoiceNumber: "INV-20240615-001",
		},
	}

	s.slots = []domain.Slot{
		{ID: "slot-1", UserID: "user-a", SlotTime: "9:00 AM"},
		{ID: "slot-2", UserID: "user-b", SlotTime: "1:00 PM"},
		{ID: "slot-3", UserID: "user-c", SlotTime: "7:00 PM"},
		{ID: "slot-4", UserID: "user-d", SlotTime: "8:30 AM"},
		{ID: "slot-5", UserID: "user-e", SlotTime: "5:00 PM"},
	}
}
