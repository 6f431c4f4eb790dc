package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/cache"
	"github.com/lzloop13-dot/LZ-Loop/config"
	orderControllers "github.com/lzloop13-dot/LZ-Loop/controllers/order"
	paymentControllers "github.com/lzloop13-dot/LZ-Loop/controllers/payment"
	"github.com/lzloop13-dot/LZ-Loop/models"
	"github.com/lzloop13-dot/LZ-Loop/notify"
	"github.com/lzloop13-dot/LZ-Loop/payments"
	"github.com/lzloop13-dot/LZ-Loop/routes"
)

func main() {
	log.Println("✅ Starting LZ Loop API...")

	// Load environment variables
	_ = godotenv.Load()

	// Money renders as a JSON number, not a quoted string
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Logger init failed: %v", err)
	}
	defer logger.Sync()

	// Init DB
	db := initDatabase(cfg.DatabaseURL)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PromoCode{},
		&models.PaymentSession{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	seedProducts(db)

	// Optional infrastructure: nil means disabled
	productCache := cache.New(cfg.RedisAddr)
	defer productCache.Close()

	publisher, err := notify.NewPublisher(cfg.AmqpURL, logger)
	if err != nil {
		log.Fatalf("❌ Broker connection failed: %v", err)
	}
	defer publisher.Close()

	provider, err := payments.NewHostedCheckout(cfg.PaymentAPIURL, cfg.PaymentAPIKey, cfg.PaymentMode)
	if err != nil {
		log.Fatalf("❌ Payment provider setup failed: %v", err)
	}

	reconciler := paymentControllers.NewReconciler(
		paymentControllers.NewSessionStore(db),
		provider,
		logger,
		func(ctx context.Context, order *models.Order) {
			orderControllers.BroadcastOrderPaid(*order)
			publisher.Publish(ctx, "order.paid", order)
		},
	)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:         db,
		Cfg:        cfg,
		Cache:      productCache,
		Publisher:  publisher,
		Payments:   provider,
		Reconciler: reconciler,
		Logger:     logger,
	})

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(databaseURL string) *gorm.DB {
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedProducts fills an empty catalog with the launch collection so a fresh
// deployment has something to sell.
func seedProducts(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	price := func(s string) decimal.Decimal {
		v, _ := decimal.NewFromString(s)
		return v
	}
	launch := []models.Product{
		{Name: "Sand", Description: "Crocheted shoulder bag in warm sand tones.", Price: price("34.00"), ImageURL: "/images/sand.jpg", Category: models.CategoryBag, Stock: 12, Active: true},
		{Name: "Sunny", Description: "Bright yellow crochet bag for summer days.", Price: price("30.00"), ImageURL: "/images/sunny.jpg", Category: models.CategoryBag, Stock: 8, Active: true},
		{Name: "Classy", Description: "Elegant black crochet bag with a sturdy lining.", Price: price("38.00"), ImageURL: "/images/classy.jpg", Category: models.CategoryBag, Stock: 10, Active: true},
		{Name: "Pebble", Description: "Compact crochet pouch for the essentials.", Price: price("18.00"), ImageURL: "/images/pebble.jpg", Category: models.CategoryPouch, Stock: 20, Active: true},
	}
	if err := db.Create(&launch).Error; err != nil {
		log.Printf("❌ Seeding catalog failed: %v", err)
		return
	}
	log.Printf("✅ Seeded catalog with %d products", len(launch))
}
