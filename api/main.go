package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hendrawijaya/managestock/internal/auth"
	"github.com/hendrawijaya/managestock/internal/config"
	"github.com/hendrawijaya/managestock/internal/db"
	"github.com/hendrawijaya/managestock/internal/events"
	api "github.com/hendrawijaya/managestock/internal/http"
	"github.com/hendrawijaya/managestock/internal/http/handlers"
	rl "github.com/hendrawijaya/managestock/internal/http/rate_limiter"
	"github.com/hendrawijaya/managestock/internal/inventory"
	"github.com/hendrawijaya/managestock/internal/redissvc"
	"github.com/hendrawijaya/managestock/internal/repo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title ManageStock API
// @version 1.0
// @description REST API for managing inventory products, stock levels and sales transactions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	defer logger.Sync()

	auth.Configure(cfg.JWTSecret, cfg.TokenTTL)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("could not connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		handlers.SetTxGuard(redissvc.NewTxGuard(rdb, 24*time.Hour))
	}

	notifier := inventory.NewNotifier(logger)
	notifier.Subscribe(func(e inventory.LowStockEvent) {
		logger.Warn("low stock alert",
			zap.Int("product_id", e.ProductID),
			zap.String("product_code", e.ProductCode),
			zap.Int("stock", e.Stock))
	})
	if cfg.KafkaBrokers != "" {
		publisher := events.NewLowStockPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer publisher.Close()
		notifier.Subscribe(publisher.Handle)
	}

	productRepo := repo.NewPostgresProductRepository(database)
	txRepo := repo.NewPostgresTransactionRepository(database)
	customerRepo := repo.NewPostgresCustomerRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)

	ledger := inventory.NewLedger(productRepo, notifier, cfg.LowStockThreshold, logger)
	pricer := inventory.NewPricer(customerRepo)
	audit := inventory.NewFileAuditLog(cfg.AuditLogPath)
	manager := inventory.NewManager(productRepo, txRepo, ledger, pricer, audit, logger)

	refreshStore := auth.NewRefreshStore(rdb, cfg.RefreshTokenTTL)
	go refreshStore.StartCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	handlers.SetManager(manager)
	handlers.SetTransactionRepo(txRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetRefreshStore(refreshStore)
	handlers.SetLogger(logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
