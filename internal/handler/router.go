package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/feed"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Store is the slice of the data backend the router needs directly:
// a cheap read for health probes and the dev-tools reset.
type Store interface {
	ListSlots(ctx context.Context) ([]domain.Slot, error)
	Reset()
}

// Deps bundles everything the router serves.
type Deps struct {
	Auth      *service.AuthService
	Account   *service.AccountService
	Wallet    *service.WalletService
	Campaigns *service.CampaignService
	Auction   *service.AuctionService
	Analytics *service.AnalyticsService
	Suggest   *service.SuggestionService
	Feed      *feed.Aggregator
	Store     Store
	Metrics   *observability.Metrics
	Logger    *zap.Logger

	// DevTools enables the /v1/dev routes; disable outside demos.
	DevTools bool
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract defined for the AdPulse dashboard.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(d.Logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(d.Store))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Authentication
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authRegisterHandler(d.Auth, d.Logger))
			r.Post("/login", authLoginHandler(d.Auth, d.Logger))
			r.Post("/refresh", authRefreshHandler(d.Auth, d.Logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(d.Auth, d.Logger))
				r.Post("/logout", authLogoutHandler(d.Auth, d.Logger))
				r.Put("/password", authChangePasswordHandler(d.Auth, d.Logger))
			})
		})

		// =============================================
		// Everything below requires a logged-in brand
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(d.Auth, d.Logger))

			// Brand account
			r.Get("/brands/{brandId}", getBrandHandler(d.Account, d.Logger))
			r.Put("/brands/{brandId}", updateBrandHandler(d.Account, d.Logger))

			// Wallet & ledger
			r.Post("/wallet/deposit", depositHandler(d.Wallet, d.Logger))
			r.Get("/brands/{brandId}/transactions", listTransactionsHandler(d.Wallet, d.Logger))
			r.Get("/brands/{brandId}/transactions/{transactionId}/invoice", getInvoiceHandler(d.Wallet, d.Logger))

			// Analytics
			r.Get("/brands/{brandId}/analytics", analyticsHandler(d.Analytics, d.Logger))

			// Campaigns
			r.Get("/campaigns", listCampaignsHandler(d.Campaigns, d.Logger))
			r.Post("/campaigns", createCampaignHandler(d.Campaigns, d.Logger))
			r.Post("/campaigns/suggestions", suggestionsHandler(d.Suggest, d.Logger))
			r.Get("/campaigns/{campaignId}", getCampaignHandler(d.Campaigns, d.Logger))
			r.Put("/campaigns/{campaignId}", updateCampaignHandler(d.Campaigns, d.Logger))
			r.Delete("/campaigns/{campaignId}", deleteCampaignHandler(d.Campaigns, d.Logger))

			// Live auction
			r.Get("/auction/results", pollResultsHandler(d.Auction, d.Logger))
			r.Get("/auction/feed", feedHandler(d.Feed))
			r.Post("/auction/feed/pause", feedPauseHandler(d.Feed))
			r.Post("/auction/feed/resume", feedResumeHandler(d.Feed))
			r.Get("/auction/feed/status", feedStatusHandler(d.Feed))
			r.Get("/auction/stats", auctionStatsHandler(d.Metrics))
		})

		// =============================================
		// Dev tools (demo helpers)
		// =============================================
		if d.DevTools {
			r.Post("/dev/reset", devResetHandler(d.Store, d.Logger))
		}
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "adpulse-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if store != nil {
			start := time.Now()
			_, err := store.ListSlots(ctx)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "store", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overall = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overall,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// ============================================================
// Dev tools
// ============================================================

func devResetHandler(store Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/dev/reset")
		defer span.End()

		store.Reset()
		logger.Info("dev: store reset to seed data")
		writeJSON(w, http.StatusOK, map[string]string{"message": "store reset to seed data"})
	}
}
