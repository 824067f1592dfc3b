package main

import (
	"log"
	"net/http"

	httphandlers "carteira/internal/interfaces/http"
	"carteira/internal/shared/config"
	"carteira/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)
	mux.HandleFunc("/api/auth/oauth/url", deps.AuthHandler.HandleAuthURL)
	mux.HandleFunc("/api/auth/oauth/callback", deps.AuthHandler.HandleCallback)

	// Public market data
	mux.HandleFunc("/api/news", deps.NewsHandler.HandleNews)
	mux.HandleFunc("/api/quotes/{ticker}", deps.AssetHandler.HandleQuote)
	mux.HandleFunc("/api/dividends/{ticker}", deps.DividendHandler.HandleTickerDividends)

	// Payment provider webhook (authenticated by signature, not JWT)
	mux.HandleFunc("/api/billing/webhook", deps.BillingHandler.HandleWebhook)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleMe)))
	mux.Handle("/api/users/risk-profile", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleRiskProfile)))
	mux.Handle("/api/assets", authMiddleware(http.HandlerFunc(deps.AssetHandler.HandleListAssets)))
	mux.Handle("/api/investments", authMiddleware(http.HandlerFunc(deps.InvestmentHandler.HandleInvestments)))
	mux.Handle("/api/portfolio/summary", authMiddleware(http.HandlerFunc(deps.InvestmentHandler.HandlePortfolioSummary)))
	mux.Handle("/api/dividends", authMiddleware(http.HandlerFunc(deps.DividendHandler.HandlePortfolioDividends)))
	mux.Handle("/api/appointments", authMiddleware(http.HandlerFunc(deps.AppointmentHandler.HandleAppointments)))
	mux.Handle("/api/billing/create-checkout-session", authMiddleware(http.HandlerFunc(deps.BillingHandler.HandleCreateCheckoutSession)))
	mux.Handle("/api/billing/check-payment", authMiddleware(http.HandlerFunc(deps.BillingHandler.HandleCheckPayment)))
	mux.Handle("/api/billing/cancel-subscription", authMiddleware(http.HandlerFunc(deps.BillingHandler.HandleCancelSubscription)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	// Apply telemetry middleware when enabled (spans outermost, metrics inside)
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Metrics(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
