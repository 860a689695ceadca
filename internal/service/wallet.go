package service

import (
	"context"
	"math"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var walletTracer = otel.Tracer("service/wallet")

// WalletService exposes the brand wallet: deposits, the transaction
// history and printable invoices.
type WalletService struct {
	ledger  port.LedgerStore
	brands  port.BrandStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewWalletService creates a new wallet service.
func NewWalletService(ledger port.LedgerStore, brands port.BrandStore, metrics *observability.Metrics, logger *zap.Logger) *WalletService {
	return &WalletService{
		ledger:  ledger,
		brands:  brands,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Deposit — POST /v1/wallet/deposit
// ============================================================

// Deposit validates the amount before touching the store, so an invalid
// request can never partially apply.
func (s *WalletService) Deposit(ctx context.Context, req *domain.DepositRequest) (*domain.DepositResponse, error) {
	ctx, span := walletTracer.Start(ctx, "WalletService.Deposit")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("wallet_deposit", time.Since(start)) }()

	span.SetAttributes(
		attribute.String("brand_id", req.BrandID),
		attribute.Float64("amount", req.Amount),
	)

	if req.BrandID == "" {
		return nil, &domain.ErrValidation{Field: "brandId", Message: "brand id is required"}
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be a finite number"}
	}
	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	brand, tx, err := s.ledger.Deposit(ctx, req.BrandID, req.Amount)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordDeposit(req.Amount)
	return &domain.DepositResponse{Brand: brand, Transaction: tx}, nil
}

// ============================================================
// Transactions — GET /v1/brands/{brandId}/transactions
// ============================================================

func (s *WalletService) ListTransactions(ctx context.Context, brandID string) ([]domain.Transaction, error) {
	ctx, span := walletTracer.Start(ctx, "WalletService.ListTransactions")
	defer span.End()

	return s.ledger.ListTransactions(ctx, brandID)
}

// ============================================================
// Invoice — GET /v1/brands/{brandId}/transactions/{id}/invoice
// ============================================================

func (s *WalletService) GetInvoice(ctx context.Context, brandID, transactionID string) (*domain.InvoiceResponse, error) {
	ctx, span := walletTracer.Start(ctx, "WalletService.GetInvoice")
	defer span.End()

	tx, err := s.ledger.GetTransaction(ctx, brandID, transactionID)
	if err != nil {
		return nil, err
	}
	brand, err := s.brands.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}

	return &domain.InvoiceResponse{
		InvoiceNumber: tx.InvoiceNumber,
		IssuedAt:      tx.Date,
		CompanyName:   brand.CompanyName,
		Email:         brand.Email,
		Description:   tx.Description,
		Amount:        tx.Amount,
		Type:          string(tx.Type),
		Status:        string(tx.Status),
	}, nil
}
