package handler

import (
	"net/http"

	"github.com/adpulse/adpulse-api/internal/feed"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Auction — /v1/auction
// ============================================================

// pollResultsHandler generates one fresh batch on demand, bypassing the
// shared feed window. The dashboard's polling loop uses the feed; this
// endpoint exists for clients that manage their own window.
func pollResultsHandler(auctionSvc *service.AuctionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/auction/results")
		defer span.End()

		bids, err := auctionSvc.PollResults(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, service.DecorateForViewer(bids, BrandIDFromContext(ctx)))
	}
}

func feedHandler(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/auction/feed")
		defer span.End()

		viewerID := BrandIDFromContext(ctx)
		span.SetAttributes(attribute.String("brand.id", viewerID))
		writeJSON(w, http.StatusOK, agg.Snapshot(viewerID))
	}
}

func feedPauseHandler(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/auction/feed/pause")
		defer span.End()

		agg.Pause()
		writeJSON(w, http.StatusOK, agg.Status())
	}
}

func feedResumeHandler(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/auction/feed/resume")
		defer span.End()

		agg.Resume()
		writeJSON(w, http.StatusOK, agg.Status())
	}
}

func feedStatusHandler(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/auction/feed/status")
		defer span.End()

		writeJSON(w, http.StatusOK, agg.Status())
	}
}

func auctionStatsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/auction/stats")
		defer span.End()

		writeJSON(w, http.StatusOK, metrics.AuctionSnapshot())
	}
}
