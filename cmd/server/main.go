package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/Skotchmaster/ecommerce_api/internal/config"
	"github.com/Skotchmaster/ecommerce_api/internal/db"
	"github.com/Skotchmaster/ecommerce_api/internal/events"
	"github.com/Skotchmaster/ecommerce_api/internal/httpserver"
	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	loggingmw "github.com/Skotchmaster/ecommerce_api/internal/middleware/logging"
	"github.com/Skotchmaster/ecommerce_api/internal/repo"
	"github.com/Skotchmaster/ecommerce_api/internal/search"
	"github.com/Skotchmaster/ecommerce_api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var indexer *search.Indexer
	var searchHandler *httpserver.SearchHandler
	if cfg.ESURL != "" {
		client, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer = search.NewIndexer(client, "products")
		searchHandler = &httpserver.SearchHandler{ES: client, Index: "products"}
	} else {
		searchHandler = &httpserver.SearchHandler{}
	}

	store := &repo.GormRepo{DB: database}
	authSvc := &service.AuthService{
		Repo:          store,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    time.Duration(cfg.SessionTTL) * time.Minute,
		Producer:      producer,
	}
	catalogSvc := &service.CatalogService{Repo: store, Producer: producer, Indexer: indexer}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthService:    authSvc,
		AuthHandler:    &httpserver.AuthHandler{Svc: authSvc},
		ProductHandler: &httpserver.ProductHandler{Svc: catalogSvc},
		SearchHandler:  searchHandler,
	})

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 10m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := store.PurgeExpiredSessions(ctx)
		if err != nil {
			logger.Error("session sweep failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("purged expired sessions", "count", n)
		}
	}); err != nil {
		log.Fatalf("cron: %v", err)
	}
	sweeper.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	sweeper.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
