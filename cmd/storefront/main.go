package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mhnipu/smart-shopper-galaxy/internal/auth"
	"github.com/mhnipu/smart-shopper-galaxy/internal/cart"
	"github.com/mhnipu/smart-shopper-galaxy/internal/catalog"
	"github.com/mhnipu/smart-shopper-galaxy/internal/checkout"
	"github.com/mhnipu/smart-shopper-galaxy/internal/currency"
	"github.com/mhnipu/smart-shopper-galaxy/internal/db"
	"github.com/mhnipu/smart-shopper-galaxy/internal/fulfillment"
	h "github.com/mhnipu/smart-shopper-galaxy/internal/http"
	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
	"github.com/mhnipu/smart-shopper-galaxy/internal/publisher"
	"github.com/mhnipu/smart-shopper-galaxy/internal/session"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsPath  string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("Storefront starting")

	cfg := loadConfig()
	ctx := context.Background()

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	catalogRepo := catalog.NewRepository(conn)
	if err := catalog.SeedDefaults(ctx, catalogRepo); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Redis backs both the product cache and the snapshot store. Without it
	// the storefront still runs, it just forgets everything on restart.
	var (
		snapshots kv.Store
		cache     catalog.ProductCache
	)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, falling back to in-memory storage: %v", err)
		snapshots = kv.NewMemoryStore()
		cache = catalog.NopCache{}
	} else {
		log.Printf("Redis ping succeeded")
		snapshots = kv.NewRedisStore(redisClient)
		cache = catalog.NewRedisCache(redisClient)
	}

	notifier := notify.LogNotifier{}
	pricing := cart.DefaultPricing()

	catalogSvc := catalog.NewService(catalogRepo, cache)
	currencySvc := currency.NewService(ctx, snapshots)
	authSvc := auth.NewService(ctx, snapshots, notifier)
	sessions := session.NewManager(snapshots, notifier)

	checkoutRepo := checkout.NewRepository(conn)
	checkoutSvc := checkout.NewService(checkoutRepo, pricing, notifier)

	poller := publisher.NewOutboxPoller(checkoutRepo, cfg.KafkaBrokers...)
	defer poller.Close()
	consumer := fulfillment.NewConsumer(checkoutRepo, cfg.KafkaBrokers...)
	defer consumer.Close()

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	go poller.Run(workerCtx)
	go consumer.Run(workerCtx)

	router := h.NewRouter(h.Handlers{
		Auth:     h.NewAuthHandler(authSvc, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(sessions, catalogSvc, currencySvc, pricing, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(sessions, checkoutSvc, currencySvc, cfg.RequestTimeout),
		Currency: h.NewCurrencyHandler(currencySvc, cfg.RequestTimeout),
		Product:  h.NewProductHandler(catalogSvc, currencySvc, cfg.RequestTimeout),
		Wishlist: h.NewWishlistHandler(sessions, catalogSvc, cfg.RequestTimeout),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
