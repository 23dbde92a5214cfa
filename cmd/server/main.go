package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/infrastructure/config"
	"clublog-service/internal/infrastructure/oauth"
	"clublog-service/internal/infrastructure/persistence"
	"clublog-service/internal/infrastructure/router"
	"clublog-service/internal/interface/httpapi"
	storeRepo "clublog-service/internal/interface/repository"
	"clublog-service/internal/interface/schedule"
	"clublog-service/internal/usecase"
	"clublog-service/pkg/logger"
	"clublog-service/pkg/metrics"
	"clublog-service/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Clublog Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection (flight records, roster slots)
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection (member and fleet reference data)
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	pilotRepository := storeRepo.NewGormPilotRepository(gormDB)
	aircraftRepository := storeRepo.NewGormAircraftRepository(gormDB)
	flightRecordRepo := storeRepo.NewMongoFlightRecordRepository(db)
	rosterRepo := storeRepo.NewMongoRosterRepository(db)
	notifierRepo := storeRepo.NewBotNotifierRepository(cfg.BotServiceURL, cfg.BotToken, log)

	// Set up the engine
	m := metrics.NewMetrics("clublog")
	eligibilityCfg := usecase.DefaultEligibilityConfig()
	eligibilityCfg.MedicalWarnDays = cfg.MedicalWarnDays

	eligibility := usecase.NewEligibilityValidator(eligibilityCfg, log)
	conflicts := usecase.NewConflictDetector(log)
	submissions := usecase.NewSubmissionService(flightRecordRepo, pilotRepository, aircraftRepository, eligibility, conflicts, m, log)
	reportService := usecase.NewReportService(flightRecordRepo, pilotRepository, usecase.NewAggregator(), m, log)

	// Set up report routing and delivery
	reportRouter := router.NewKindRouter(log)
	reportRouter.Register(templates.NewDailyReportHandler(reportService, notifierRepo, log))

	// Set up calendar OAuth and roster sync
	calendarOAuth := oauth.NewCalendarOAuth(
		cfg.CalendarClientID,
		cfg.CalendarClientSecret,
		cfg.CalendarRefreshToken,
		log,
	)
	tokenSource := calendarOAuth.GetTokenSource(ctx)

	calendarService, err := schedule.NewCalendarService(ctx, tokenSource, rosterRepo, log, cfg.CalendarID, cfg.CalendarPollInterval, cfg.CalendarLookahead)
	if err != nil {
		log.Fatal("Failed to create calendar service", "error", err)
	}

	// Start calendar polling in a goroutine
	go calendarService.StartPolling(ctx)

	// Start daily report dispatch in a goroutine
	go func() {
		reportTicker := time.NewTicker(cfg.ReportInterval)
		defer reportTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Report dispatcher stopped")
				return
			case <-reportTicker.C:
				today := time.Now()
				req := &entity.ReportRequest{
					Kind:      entity.ReportDaily,
					From:      today,
					To:        today,
					ChannelID: cfg.BotChannelID,
				}
				handler := reportRouter.GetHandler(req.Kind)
				if handler == nil {
					log.Error("No handler for report kind", "kind", req.Kind)
					continue
				}
				if err := handler.Process(ctx, req); err != nil {
					log.Error("Error dispatching daily report", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for the API and metrics
	mux := http.NewServeMux()
	apiHandler := httpapi.NewHandler(submissions, reportService, log)
	apiHandler.Register(mux)
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
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Clublog Service stopped")
}
