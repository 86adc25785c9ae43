package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/santos123-art/variety-vibe-store/internal/cart"
	"github.com/santos123-art/variety-vibe-store/internal/catalog"
	"github.com/santos123-art/variety-vibe-store/internal/config"
	"github.com/santos123-art/variety-vibe-store/internal/db"
	"github.com/santos123-art/variety-vibe-store/internal/events"
	"github.com/santos123-art/variety-vibe-store/internal/httpapi"
	"github.com/santos123-art/variety-vibe-store/internal/order"
	"github.com/santos123-art/variety-vibe-store/internal/profile"
)

type orderPublisher interface {
	order.Publisher
	Close() error
}

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("open pgx pool: %v", err)
	}
	defer pool.Close()

	var publisher orderPublisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("dial rabbitmq: %v", err)
		}
		defer conn.Close()

		rabbitPub, err := events.NewRabbitPublisher(conn)
		if err != nil {
			logger.Fatalf("create order publisher: %v", err)
		}
		publisher = rabbitPub
	} else {
		logger.Printf("RABBITMQ_URL not set, order events disabled")
	}

	catalogRepo := catalog.NewPostgresRepository(pool)
	profileRepo := profile.NewRepository(database)
	orderRepo := order.NewRepository(database)
	carts := cart.NewStore()
	checkout := order.NewService(orderRepo, carts, publisher, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Catalog:          catalogRepo,
		Carts:            carts,
		Orders:           orderRepo,
		Checkout:         checkout,
		Profiles:         profileRepo,
		Logger:           logger,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}
