package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/rogerio-castellano/pos-tracker/docs"
	"github.com/rogerio-castellano/pos-tracker/internal/auth"
	"github.com/rogerio-castellano/pos-tracker/internal/config"
	"github.com/rogerio-castellano/pos-tracker/internal/db"
	pos "github.com/rogerio-castellano/pos-tracker/internal/http"
	"github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pos-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pos-tracker/internal/notify"
	"github.com/rogerio-castellano/pos-tracker/internal/redissvc"
	"github.com/rogerio-castellano/pos-tracker/internal/repo"
	"github.com/rogerio-castellano/pos-tracker/internal/sales"
)

// @title POS Tracker API
// @version 1.0
// @description REST API for point-of-sale transactions, inventory and notifications.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	saleRepo := repo.NewPostgresSaleRepository(database)
	notificationRepo := repo.NewPostgresNotificationRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)
	metricsRepo := repo.NewPostgresMetricsRepository(database, cfg.ExpiryCardDays)

	// Redis backs the per-day sold counters; the ledger scan covers for it
	// when Redis is down so sales never block on the cache.
	var counter notify.SoldCounter = notify.NewSaleScanCounter(saleRepo)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable (%v), falling back to ledger scans", err)
	} else {
		defer rdb.Close()
		counter = redissvc.NewRedisService(rdb)
	}

	engine := notify.NewEngine(notificationRepo, productRepo, saleRepo, counter, cfg.HighSellingThreshold, cfg.ExpiryWindowDays)
	processor := sales.NewProcessor(productRepo, saleRepo, engine, counter)

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetNotificationRepo(notificationRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetMetricsRepo(metricsRepo)
	handlers.SetRuleEngine(engine)
	handlers.SetProcessor(processor)
	handlers.SetExpiryWindowDays(cfg.ExpiryWindowDays)

	mailer := &notify.Mailer{
		From:         cfg.AlertFrom,
		To:           cfg.AlertTo,
		Server:       cfg.SMTPServer,
		Port:         cfg.SMTPPort,
		User:         cfg.SMTPUser,
		Password:     cfg.SMTPPassword,
		AuthDisabled: cfg.SMTPAuthDisabled,
	}

	limiter := rl.NewStore(5, 10)
	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go limiter.StartCleanupLoop()
	go notify.StartDailySummaryLoop(engine, userRepo, mailer, 24*time.Hour)

	r := pos.NewRouter(limiter)
	log.Printf("✅ Server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
