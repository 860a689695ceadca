package handler

import (
	"net/http"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Wallet — deposits, transaction history, invoices
// ============================================================

func depositHandler(walletSvc *service.WalletService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/wallet/deposit")
		defer span.End()

		var req domain.DepositRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		authID := BrandIDFromContext(ctx)
		if req.BrandID == "" {
			req.BrandID = authID
		}
		if req.BrandID != authID {
			writeError(w, http.StatusForbidden, "forbidden: brand mismatch")
			return
		}
		span.SetAttributes(attribute.Float64("deposit.amount", req.Amount))

		resp, err := walletSvc.Deposit(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func listTransactionsHandler(walletSvc *service.WalletService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/brands/{brandId}/transactions")
		defer span.End()

		brandID := authorizedBrandID(w, r)
		if brandID == "" {
			return
		}

		txs, err := walletSvc.ListTransactions(ctx, brandID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if txs == nil {
			txs = []domain.Transaction{}
		}
		writeJSON(w, http.StatusOK, txs)
	}
}

func getInvoiceHandler(walletSvc *service.WalletService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/brands/{brandId}/transactions/{transactionId}/invoice")
		defer span.End()

		brandID := authorizedBrandID(w, r)
		if brandID == "" {
			return
		}
		transactionID := chi.URLParam(r, "transactionId")

		invoice, err := walletSvc.GetInvoice(ctx, brandID, transactionID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, invoice)
	}
}
