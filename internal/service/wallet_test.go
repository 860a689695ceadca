package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/memstore"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWalletService() (*service.WalletService, *memstore.Store) {
	store := memstore.New(0, zap.NewNop())
	svc := service.NewWalletService(store, store, observability.NewMetrics(), zap.NewNop())
	return svc, store
}

func TestWalletDeposit(t *testing.T) {
	svc, _ := newWalletService()

	resp, err := svc.Deposit(context.Background(), &domain.DepositRequest{
		BrandID: "brand-1",
		Amount:  100.25,
	})
	require.NoError(t, err)
	assert.Equal(t, 7600.75, resp.Brand.WalletBalance)
	assert.Equal(t, domain.TransactionCredit, resp.Transaction.Type)
	assert.Regexp(t, `^INV-\d{8}-[A-Z0-9]{5}$`, resp.Transaction.InvoiceNumber)
}

func TestWalletDepositRejectsBadAmounts(t *testing.T) {
	svc, store := newWalletService()
	ctx := context.Background()

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.Deposit(ctx, &domain.DepositRequest{BrandID: "brand-1", Amount: amount})
		var verr *domain.ErrValidation
		require.ErrorAs(t, err, &verr, "amount %v", amount)
	}

	// Rejected deposits must leave no trace in balance or ledger.
	brand, err := store.GetBrand(ctx, "brand-1")
	require.NoError(t, err)
	assert.Equal(t, 7500.50, brand.WalletBalance)

	txs, err := store.ListTransactions(ctx, "brand-1")
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestWalletDepositUnknownBrand(t *testing.T) {
	svc, _ := newWalletService()

	_, err := svc.Deposit(context.Background(), &domain.DepositRequest{BrandID: "brand-404", Amount: 10})
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestWalletGetInvoice(t *testing.T) {
	svc, _ := newWalletService()
	ctx := context.Background()

	invoice, err := svc.GetInvoice(ctx, "brand-1", "tx-2")
	require.NoError(t, err)
	assert.Equal(t, "INV-20240528-001", invoice.InvoiceNumber)
	assert.Equal(t, "Starlight Inc.", invoice.CompanyName)
	assert.Equal(t, "Wallet Deposit", invoice.Description)
	assert.Equal(t, 5000.00, invoice.Amount)

	// Another brand's transaction is invisible.
	_, err = svc.GetInvoice(ctx, "brand-2", "tx-2")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}
