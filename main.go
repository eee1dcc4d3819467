package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"pho-paradise-api/cache"
	"pho-paradise-api/checkout"
	"pho-paradise-api/config"
	"pho-paradise-api/handlers"
	"pho-paradise-api/metrics"
	"pho-paradise-api/models"
	"pho-paradise-api/notify"
	"pho-paradise-api/payments"
	"pho-paradise-api/progression"
	"pho-paradise-api/routes"
	"pho-paradise-api/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	orders := store.NewGormOrderStore(db)
	menu := store.NewGormMenuStore(db)
	logger.Info("database connected and migrated", "path", cfg.DBPath)

	var menuCache *cache.MenuCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		menuCache = cache.NewMenuCache(client, 5*time.Minute)
		logger.Info("menu cache enabled", "addr", cfg.RedisAddr)
	}

	var events *notify.EventPublisher
	if cfg.KafkaBroker != "" {
		events = notify.NewEventPublisher(&kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBroker),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		})
		logger.Info("order event publishing enabled", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic)
	}

	var notifier notify.Sender
	if cfg.SMTPAddr != "" {
		notifier = notify.NewSMTPSender(cfg.SMTPAddr, cfg.EmailFrom, cfg.SMTPUser, cfg.SMTPPassword, logger)
	} else {
		notifier = notify.NewLogSender(logger)
	}

	processor := payments.NewClient(cfg.StripeSecretKey, cfg.StripeAPIBase)
	builder := checkout.NewBuilder(orders, processor, cfg.AddonSurcharges, cfg.DeliveryFee, cfg.AppBaseURL, logger)

	dwell := progression.DwellTimes{
		models.StatusPending:   cfg.Dwell(),
		models.StatusPreparing: cfg.Dwell(),
		models.StatusReady:     cfg.Dwell(),
	}
	engine := progression.NewEngine(orders, dwell, logger)

	r := gin.Default()

	// CORS for the frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Stripe-Signature")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Phở Paradise Ordering API",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	routes.SetupRoutes(r, routes.Deps{
		Menu:      handlers.NewMenuHandler(menu, menuCache, logger),
		Orders:    handlers.NewOrderHandler(orders, notifier, events, logger),
		Checkout:  handlers.NewCheckoutHandler(builder, logger),
		Webhook:   handlers.NewWebhookHandler(orders, notifier, events, cfg.StripeWebhookSecret, logger),
		Progress:  handlers.NewProgressHandler(engine, logger),
		Seed:      handlers.NewSeedHandler(menu, menuCache, logger),
		JWTSecret: []byte(cfg.JWTSecret),
	})

	logger.Info("🚀 server running", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
