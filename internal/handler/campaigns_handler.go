package handler

import (
	"net/http"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Campaigns — /v1/campaigns
// ============================================================

func listCampaignsHandler(campaignSvc *service.CampaignService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/campaigns")
		defer span.End()

		campaigns, err := campaignSvc.ListCampaigns(ctx, BrandIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if campaigns == nil {
			campaigns = []domain.Campaign{}
		}
		writeJSON(w, http.StatusOK, campaigns)
	}
}

func getCampaignHandler(campaignSvc *service.CampaignService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/campaigns/{campaignId}")
		defer span.End()

		campaign, err := campaignSvc.GetCampaign(ctx, BrandIDFromContext(ctx), chi.URLParam(r, "campaignId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, campaign)
	}
}

func createCampaignHandler(campaignSvc *service.CampaignService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/campaigns")
		defer span.End()

		var req domain.Campaign
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := campaignSvc.CreateCampaign(ctx, BrandIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateCampaignHandler(campaignSvc *service.CampaignService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/campaigns/{campaignId}")
		defer span.End()

		var req domain.Campaign
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.ID = chi.URLParam(r, "campaignId")

		updated, err := campaignSvc.UpdateCampaign(ctx, BrandIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCampaignHandler(campaignSvc *service.CampaignService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/campaigns/{campaignId}")
		defer span.End()

		if err := campaignSvc.DeleteCampaign(ctx, BrandIDFromContext(ctx), chi.URLParam(r, "campaignId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Suggestions — POST /v1/campaigns/suggestions
// ============================================================

func suggestionsHandler(suggestSvc *service.SuggestionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/campaigns/suggestions")
		defer span.End()

		var req domain.SuggestionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := suggestSvc.Suggest(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
