package handler

import (
	"net/http"

	"github.com/adpulse/adpulse-api/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Analytics — GET /v1/brands/{brandId}/analytics
// ============================================================

func analyticsHandler(analyticsSvc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/brands/{brandId}/analytics")
		defer span.End()

		brandID := authorizedBrandID(w, r)
		if brandID == "" {
			return
		}
		span.SetAttributes(attribute.String("brand.id", brandID))

		summary, err := analyticsSvc.GetSummary(ctx, brandID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
