package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"reservewise/internal/config"
	"reservewise/internal/db"
	"reservewise/internal/devapi"
	"reservewise/internal/repository"
)

func main() {
	cfg, err := config.LoadDevAPI()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	var srv *devapi.Server
	if cfg.DatabaseURL == "" {
		logger.Info("using in-memory store", "seed", cfg.Seed)
		srv = devapi.NewMemoryServer(cfg.Schema, cfg.Seed)
	} else {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer conn.Close()
		if err := db.EnsureSchema(ctx, conn); err != nil {
			log.Fatalf("%v", err)
		}
		customers := repository.NewCustomerRepository(conn)
		reservations := repository.NewReservationRepository(conn)
		if cfg.Seed {
			if err := devapi.SeedIfEmpty(ctx, customers, reservations, time.Now()); err != nil {
				log.Fatalf("Failed to seed database: %v", err)
			}
		}
		logger.Info("using postgres store")
		srv = devapi.NewServer(customers, reservations, cfg.Schema, logger)
	}

	handler := handlers.CombinedLoggingHandler(os.Stdout, handlers.RecoveryHandler()(srv.Handler()))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("dev api listening", "port", cfg.Port, "schema", cfg.Schema.Name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
