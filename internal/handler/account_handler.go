package handler

import (
	"net/http"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Brand account — /v1/brands/{brandId}
// ============================================================

func getBrandHandler(accountSvc *service.AccountService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/brands/{brandId}")
		defer span.End()

		brandID := authorizedBrandID(w, r)
		if brandID == "" {
			return
		}
		span.SetAttributes(attribute.String("brand.id", brandID))

		brand, err := accountSvc.GetBrand(ctx, brandID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, brand)
	}
}

func updateBrandHandler(accountSvc *service.AccountService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/brands/{brandId}")
		defer span.End()

		brandID := authorizedBrandID(w, r)
		if brandID == "" {
			return
		}

		var req domain.BrandUpdate
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		brand, err := accountSvc.UpdateBrand(ctx, brandID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, brand)
	}
}
