package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/oauth"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/interface/provider"
	"flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flightwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up reference-data repositories
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	airportRepo := repository.NewGormAirportRepository(gormDB)

	// Set up state and delivery repositories
	flightRepo := repository.NewMongoFlightRepository(db)
	changeRepo := repository.NewMongoFlightChangeRepository(db)
	notificationRepo := repository.NewMongoNotificationRepository(db)
	whatsappRepo := repository.NewWhatsappRepository(
		cfg.WhatsAppServiceURL,
		cfg.WhatsAppToken,
		cfg.WhatsAppCompanyID,
		cfg.WhatsAppAgentID,
		log,
	)
	smsRepo, err := repository.NewSNSSMSRepository(ctx, cfg.AWSRegion, cfg.SMSSenderID, log)
	if err != nil {
		log.Fatal("Failed to create SNS client", "error", err)
	}

	// Set up provider OAuth and status client
	providerOAuth := oauth.NewProviderOAuth(
		cfg.ProviderClientID,
		cfg.ProviderClientSecret,
		cfg.ProviderTokenURL,
		log,
	)
	providerHTTP := oauth2.NewClient(ctx, providerOAuth.GetTokenSource(ctx))
	providerHTTP.Timeout = 30 * time.Second
	statusProvider := provider.NewFlightStatusClient(cfg.ProviderBaseURL, providerHTTP, log)

	appMetrics := metrics.NewMetrics("flightwatch")

	detector := usecase.NewChangeDetector(cfg.DelayThreshold)
	dispatcher := usecase.NewNotificationDispatcher(
		bookingRepo,
		airportRepo,
		notificationRepo,
		changeRepo,
		whatsappRepo,
		smsRepo,
		appMetrics,
		log,
		cfg.MaxRetries,
		cfg.PendingBatchSize,
	)
	monitor := usecase.NewFlightMonitor(
		flightRepo,
		changeRepo,
		statusProvider,
		detector,
		dispatcher,
		appMetrics,
		log,
		cfg.PollInterval,
		cfg.InterFlightDelay,
		cfg.WindowBefore,
		cfg.WindowAfter,
	)

	// Start monitoring loop in a goroutine
	go monitor.Run(ctx)

	// Start retry sweep in a goroutine
	go func() {
		sweepTicker := time.NewTicker(cfg.RetrySweepInterval)
		defer sweepTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Notification retry sweep stopped")
				return
			case <-sweepTicker.C:
				if err := dispatcher.RetryPending(ctx); err != nil {
					log.Error("Error retrying pending notifications", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightwatch Service stopped")
}
