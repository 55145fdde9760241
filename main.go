package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-restaurant-ordering/checkout"
	"go-restaurant-ordering/config"
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/database"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/logger"
	"go-restaurant-ordering/middleware"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/routes"
	"go-restaurant-ordering/sequence"
	"go-restaurant-ordering/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.DBinstance(ctx, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn("mongo disconnect", zap.Error(err))
		}
	}()

	db := client.Database(cfg.Database.Name)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	content := repository.NewContentRepository(db)
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)

	seq := sequence.NewMongoSequencer(database.OpenCollection(client, cfg.Database.Name, database.CounterCollection), sequence.OrderNoKey)
	maxOrderNo, err := orders.MaxOrderNo(ctx)
	if err != nil {
		return fmt.Errorf("read highest order number: %w", err)
	}
	if err := seq.EnsureAtLeast(ctx, maxOrderNo); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	hub := controllers.NewHub(cfg.Server.AllowedOrigins, log)
	defer hub.Close()

	svc := checkout.NewService(content, orders, seq, hub, checkout.Config{
		Rules:        validation.Rules{MinOrderValue: cfg.Orders.MinOrderValue},
		LockTerminal: cfg.Orders.TerminalStatusLock,
	}, log.Named("checkout"))
	tokens := helpers.NewTokenHelper(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	timeout := cfg.Server.RequestTimeout

	router := gin.New()
	router.Use(middleware.RequestLogger(log.Named("http")))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(router, routes.Controllers{
		Orders:        controllers.NewOrderController(svc, timeout, log),
		Feed:          hub,
		Branches:      controllers.NewBranchController(content, timeout, log),
		DeliveryAreas: controllers.NewDeliveryAreaController(content, timeout, log),
		PromoCodes:    controllers.NewPromoCodeController(content, timeout, log),
		Discount:      controllers.NewDiscountController(content, timeout, log),
		Uploads:       controllers.NewUploadController(cfg.Uploads.Dir, cfg.Uploads.MaxBytes, log),
		Users:         controllers.NewUserController(users, tokens, timeout, log),
	}, tokens, cfg.Uploads.Dir)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
