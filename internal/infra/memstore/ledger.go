package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Ledger — port.LedgerStore
// ============================================================

// Deposit credits the brand's wallet and appends the matching ledger entry
// under one write lock, so concurrent deposits on the same brand can never
// lose an increment or record a balance without its transaction.
func (s *Store) Deposit(ctx context.Context, brandID string, amount float64) (*domain.Brand, *domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Memstore.Deposit")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.brands[brandID]
	if !ok {
		return nil, nil, &domain.ErrNotFound{Resource: "brand", ID: brandID}
	}

	now := time.Now().UTC()
	tx := domain.Transaction{
		ID:            "tx-" + uuid.NewString(),
		BrandID:       brandID,
		Date:          now,
		Description:   "Wallet Deposit",
		Amount:        amount,
		Type:          domain.TransactionCredit,
		Status:        domain.TransactionCompleted,
		InvoiceNumber: s.invoiceNumber(now),
	}
	b.WalletBalance += amount
	s.transactions = append(s.transactions, tx)

	s.logger.Info("wallet deposit applied",
		zap.String("brand_id", brandID),
		zap.Float64("amount", amount),
		zap.Float64("balance", b.WalletBalance),
		zap.String("invoice", tx.InvoiceNumber),
	)

	txCopy := tx
	return copyBrand(b), &txCopy, nil
}

// ListTransactions returns the brand's ledger entries most-recent-first.
func (s *Store) ListTransactions(ctx context.Context, brandID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Memstore.ListTransactions")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.brands[brandID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "brand", ID: brandID}
	}

	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.BrandID == brandID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) GetTransaction(ctx context.Context, brandID, transactionID string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Memstore.GetTransaction")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.transactions {
		if tx.ID == transactionID && tx.BrandID == brandID {
			txCopy := tx
			return &txCopy, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
}
