package main

import (
	"context"
	"log"
	"strings"

	"carteira/internal/domain/appointment"
	"carteira/internal/domain/asset"
	"carteira/internal/domain/billing"
	"carteira/internal/domain/dividend"
	"carteira/internal/domain/investment"
	"carteira/internal/domain/news"
	"carteira/internal/domain/portfolio"
	"carteira/internal/domain/user"
	"carteira/internal/infrastructure/binance"
	"carteira/internal/infrastructure/brapi"
	"carteira/internal/infrastructure/firebase"
	"carteira/internal/infrastructure/postgres"
	"carteira/internal/infrastructure/rss"
	"carteira/internal/infrastructure/stripe"
	"carteira/internal/infrastructure/tesouro"
	httphandlers "carteira/internal/interfaces/http"
	"carteira/internal/shared/auth"
	"carteira/internal/shared/config"
	"carteira/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	AssetHandler       *httphandlers.AssetHandler
	InvestmentHandler  *httphandlers.InvestmentHandler
	DividendHandler    *httphandlers.DividendHandler
	NewsHandler        *httphandlers.NewsHandler
	AppointmentHandler *httphandlers.AppointmentHandler
	BillingHandler     *httphandlers.BillingHandler

	// Auth
	JWT *auth.JWT

	// Scheduler collaborators
	AppointmentService *appointment.Service
	Notifier           appointment.Notifier
	Messages           *messages.Messages
}

// quoteRouter picks the quote source by ticker shape: treasury titles carry
// the TESOURO_ prefix, everything else goes to brapi. Crypto holdings have no
// per-ticker source and fall back to their recorded purchase total.
type quoteRouter struct {
	stocks   *brapi.Client
	treasury *tesouro.Catalog
}

func (q *quoteRouter) Quote(ctx context.Context, ticker string) (*asset.Quote, error) {
	if strings.HasPrefix(strings.ToUpper(ticker), "TESOURO_") {
		return q.treasury.Quote(ctx, ticker)
	}
	return q.stocks.Quote(ctx, ticker)
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Initialize market data clients
	brapiClient := brapi.NewClient(cfg.Brapi.Token)
	binanceClient := binance.NewClient(cfg.Crypto.USDToBRL)
	tesouroCatalog := tesouro.NewCatalog()

	// Load notification texts
	msgs := messages.Default()
	if cfg.Firebase.MessagesFile != "" {
		loaded, err := messages.Load(cfg.Firebase.MessagesFile)
		if err != nil {
			log.Printf("Warning: Failed to load notification messages, using defaults: %v", err)
		} else {
			msgs = loaded
		}
	}

	// Initialize the FCM notifier if credentials are configured
	var notifier appointment.Notifier
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.AppointmentTopic)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase, push notifications disabled: %v", err)
		} else {
			notifier = fcmClient
		}
	} else {
		log.Println("Firebase credentials not configured, push notifications disabled")
	}

	// Initialize domain services
	userService := user.NewService(userRepo)
	assetService := asset.NewService(brapiClient, binanceClient, tesouroCatalog)
	investmentService := investment.NewService(investmentRepo, userRepo)
	portfolioService := portfolio.NewService(investmentRepo, &quoteRouter{stocks: brapiClient, treasury: tesouroCatalog})
	dividendService := dividend.NewService(brapiClient, investmentRepo)
	appointmentService := appointment.NewService(appointmentRepo, notifier, msgs)

	newsFeeds := make([]news.Feed, 0, len(cfg.News.Feeds))
	for _, f := range cfg.News.Feeds {
		newsFeeds = append(newsFeeds, news.Feed{URL: f.URL, Source: f.Source})
	}
	newsService := news.NewService(rss.NewFetcher(), newsFeeds)

	stripeClient := stripe.NewClient(cfg.Billing.SecretKey)
	billingService := billing.NewService(stripeClient, userRepo, cfg.Billing.PriceID, cfg.Server.AppURL)
	webhookVerifier := stripe.NewWebhookVerifier(cfg.Billing.WebhookSecret)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)
	googleOAuth := auth.NewGoogleOAuthProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.CallbackURL,
	)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userService, googleOAuth, jwt),
		UserHandler:        httphandlers.NewUserHandler(userService),
		AssetHandler:       httphandlers.NewAssetHandler(assetService, userService),
		InvestmentHandler:  httphandlers.NewInvestmentHandler(investmentService, portfolioService),
		DividendHandler:    httphandlers.NewDividendHandler(dividendService),
		NewsHandler:        httphandlers.NewNewsHandler(newsService),
		AppointmentHandler: httphandlers.NewAppointmentHandler(appointmentService),
		BillingHandler:     httphandlers.NewBillingHandler(billingService, webhookVerifier),
		JWT:                jwt,
		AppointmentService: appointmentService,
		Notifier:           notifier,
		Messages:           msgs,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
