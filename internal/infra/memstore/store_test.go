package memstore_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/memstore"

	"go.uber.org/zap"
)

func newStore() *memstore.Store {
	return memstore.New(0, zap.NewNop())
}

func TestSeedDataset(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	b, err := s.GetBrand(ctx, "brand-1")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	if b.CompanyName != "Starlight Inc." {
		t.Errorf("expected Starlight Inc., got %q", b.CompanyName)
	}
	if b.WalletBalance != 7500.50 {
		t.Errorf("expected balance 7500.50, got %v", b.WalletBalance)
	}

	active, err := s.ActiveCampaigns(ctx)
	if err != nil {
		t.Fatalf("ActiveCampaigns: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active campaigns in seed, got %d", len(active))
	}

	slots, err := s.ListSlots(ctx)
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	if len(slots) != 5 {
		t.Errorf("expected 5 slots, got %d", len(slots))
	}
}

func TestDeposit(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	brand, tx, err := s.Deposit(ctx, "brand-1", 250.00)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if brand.WalletBalance != 7750.50 {
		t.Errorf("expected balance 7750.50, got %v", brand.WalletBalance)
	}
	if tx.Type != domain.TransactionCredit {
		t.Errorf("expected Credit, got %s", tx.Type)
	}
	if tx.Status != domain.TransactionCompleted {
		t.Errorf("expected Completed, got %s", tx.Status)
	}
	if tx.Description != "Wallet Deposit" {
		t.Errorf("unexpected description %q", tx.Description)
	}

	// The new entry must be visible in the ledger, most recent first.
	txs, err := s.ListTransactions(ctx, "brand-1")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if txs[0].ID != tx.ID {
		t.Errorf("expected deposit at head of ledger, got %s", txs[0].ID)
	}
}

func TestDepositUnknownBrand(t *testing.T) {
	s := newStore()

	_, _, err := s.Deposit(context.Background(), "brand-999", 50)
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDepositConcurrent(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, _, err := s.Deposit(ctx, "brand-2", 10); err != nil {
				t.Errorf("Deposit: %v", err)
			}
		}()
	}
	wg.Wait()

	b, err := s.GetBrand(ctx, "brand-2")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	if b.WalletBalance != 12340.00+workers*10 {
		t.Errorf("lost deposit: expected %v, got %v", 12340.00+workers*10, b.WalletBalance)
	}

	txs, err := s.ListTransactions(ctx, "brand-2")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	// 1 seed entry + one per worker.
	if len(txs) != workers+1 {
		t.Errorf("expected %d ledger entries, got %d", workers+1, len(txs))
	}
}

var invoicePattern = regexp.MustCompile(`^INV-\d{8}-[A-Z0-9]{5}$`)

func TestInvoiceNumberFormat(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		_, tx, err := s.Deposit(ctx, "brand-3", 1)
		if err != nil {
			t.Fatalf("Deposit: %v", err)
		}
		if !invoicePattern.MatchString(tx.InvoiceNumber) {
			t.Fatalf("bad invoice number %q", tx.InvoiceNumber)
		}
		seen[tx.InvoiceNumber] = true
	}
	// Collisions are theoretically possible in a 36^5 space but a run of
	// 200 producing one would indicate a broken generator.
	if len(seen) != 200 {
		t.Errorf("expected 200 distinct invoice numbers, got %d", len(seen))
	}
}

func TestListTransactionsSorted(t *testing.T) {
	s := newStore()

	txs, err := s.ListTransactions(context.Background(), "brand-1")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].Date.After(txs[i-1].Date) {
			t.Errorf("ledger not sorted most-recent-first at index %d", i)
		}
	}
}

func TestCreateBrandDuplicateEmail(t *testing.T) {
	s := newStore()

	err := s.CreateBrand(context.Background(), &domain.Brand{
		ID:    "brand-x",
		Email: "CONTACT@starlight.co",
	})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestUpdateBrand(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	name := "Starlight Global"
	b, err := s.UpdateBrand(ctx, "brand-1", &domain.BrandUpdate{CompanyName: &name})
	if err != nil {
		t.Fatalf("UpdateBrand: %v", err)
	}
	if b.CompanyName != name {
		t.Errorf("expected %q, got %q", name, b.CompanyName)
	}

	// Taking another brand's email must be rejected.
	email := "hello@quantumleap.tech"
	if _, err := s.UpdateBrand(ctx, "brand-1", &domain.BrandUpdate{Email: &email}); err == nil {
		t.Error("expected conflict when claiming another brand's email")
	}
}

func TestCampaignCRUD(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	created, err := s.CreateCampaign(ctx, &domain.Campaign{
		BrandID:   "brand-1",
		Title:     "Test Drive",
		Status:    domain.CampaignDraft,
		BidAmount: 0.10,
	})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated campaign id")
	}

	created.Status = domain.CampaignActive
	updated, err := s.UpdateCampaign(ctx, created)
	if err != nil {
		t.Fatalf("UpdateCampaign: %v", err)
	}
	if updated.Status != domain.CampaignActive {
		t.Errorf("expected Active, got %s", updated.Status)
	}

	if err := s.DeleteCampaign(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCampaign: %v", err)
	}
	if _, err := s.GetCampaign(ctx, created.ID); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestResetRestoresSeed(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	if _, _, err := s.Deposit(ctx, "brand-1", 999); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	s.Reset()

	b, err := s.GetBrand(ctx, "brand-1")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	if b.WalletBalance != 7500.50 {
		t.Errorf("expected seed balance after reset, got %v", b.WalletBalance)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	b, err := s.GetBrand(ctx, "brand-1")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	b.WalletBalance = 0

	again, err := s.GetBrand(ctx, "brand-1")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	if again.WalletBalance != 7500.50 {
		t.Error("mutating a returned brand leaked into the store")
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	if err := s.StoreRefreshToken(ctx, "brand-1", "hash-1", time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("StoreRefreshToken: %v", err)
	}
	tok, err := s.GetRefreshToken(ctx, "hash-1")
	if err != nil {
		t.Fatalf("GetRefreshToken: %v", err)
	}
	if tok.Revoked {
		t.Error("new token should not be revoked")
	}

	if err := s.RevokeAllRefreshTokens(ctx, "brand-1"); err != nil {
		t.Fatalf("RevokeAllRefreshTokens: %v", err)
	}
	tok, err = s.GetRefreshToken(ctx, "hash-1")
	if err != nil {
		t.Fatalf("GetRefreshToken: %v", err)
	}
	if !tok.Revoked {
		t.Error("expected token revoked")
	}
}
