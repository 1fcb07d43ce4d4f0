package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/robfig/cron/v3"

	"reservewise/internal/api"
	"reservewise/internal/auth"
	"reservewise/internal/client"
	"reservewise/internal/config"
	"reservewise/internal/forms"
	"reservewise/internal/metrics"
	"reservewise/internal/service"
)

var hashPassword = flag.String("hash-password", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")

func main() {
	flag.Parse()
	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	m := metrics.New()
	apiClient, err := client.New(cfg.APIBaseURL, cfg.Schema, cfg.APITimeout,
		client.WithMetrics(m),
		client.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	strategy, err := auth.NewStrategy(cfg.Auth.Strategy, cfg.Auth.Accounts()...)
	if err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}
	sessions, err := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.SecureCookie)
	if err != nil {
		log.Fatalf("Failed to set up sessions: %v", err)
	}
	authenticator := auth.NewAuthenticator(strategy, sessions)

	renderer, err := api.NewRenderer(logger)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	validator := forms.NewValidator(time.Now)
	customers := client.CustomerSource{C: apiClient}

	router := api.NewRouter(api.Handlers{
		Auth:         api.NewAuthHandler(authenticator, renderer, strategy.Name() == auth.StrategyMock),
		Dashboard:    api.NewDashboardHandler(service.NewDashboardService(apiClient, apiClient), renderer),
		Customers:    api.NewCustomerHandler(customers, validator, renderer),
		Reservations: api.NewReservationHandler(client.ReservationSource{C: apiClient}, customers, validator, renderer),
	}, authenticator, m)

	var scheduler *cron.Cron
	if cfg.Reminders.Enabled {
		email, sms := service.NewSenders(service.NotifierConfig{
			SendGridAPIKey:   cfg.Reminders.SendGridAPIKey,
			FromEmail:        cfg.Reminders.FromEmail,
			FromName:         cfg.Reminders.FromName,
			TwilioAccountSID: cfg.Reminders.TwilioAccountSID,
			TwilioAuthToken:  cfg.Reminders.TwilioAuthToken,
			TwilioFromNumber: cfg.Reminders.TwilioFromNumber,
		}, logger)
		reminders := service.NewReminderService(apiClient, apiClient, email, sms, m, logger)

		scheduler = cron.New()
		if _, err := reminders.Schedule(scheduler, cfg.Reminders.Schedule, 5*time.Minute); err != nil {
			log.Fatalf("Failed to schedule reminders: %v", err)
		}
		scheduler.Start()
		logger.Info("reminder job scheduled", "schedule", cfg.Reminders.Schedule)
	}

	var handler http.Handler = router
	handler = handlers.CompressHandler(handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)(handler)
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)
	handler = handlers.ProxyHeaders(handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("dashboard listening", "port", cfg.Port, "api", cfg.APIBaseURL, "auth", strategy.Name())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
