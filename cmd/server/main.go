package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	catalogDelivery "github.com/tair/retail-inventory/internal/catalog/delivery/http"
	catalogDomain "github.com/tair/retail-inventory/internal/catalog/domain"
	catalogRepo "github.com/tair/retail-inventory/internal/catalog/repository"
	inventoryDelivery "github.com/tair/retail-inventory/internal/inventory/delivery/http"
	inventoryDomain "github.com/tair/retail-inventory/internal/inventory/domain"
	inventoryRepo "github.com/tair/retail-inventory/internal/inventory/repository"
	orderDelivery "github.com/tair/retail-inventory/internal/order/delivery/http"
	orderDomain "github.com/tair/retail-inventory/internal/order/domain"
	orderRepo "github.com/tair/retail-inventory/internal/order/repository"
	returnsDelivery "github.com/tair/retail-inventory/internal/returns/delivery/http"
	returnsDomain "github.com/tair/retail-inventory/internal/returns/domain"
	returnsRepo "github.com/tair/retail-inventory/internal/returns/repository"
	"github.com/tair/retail-inventory/internal/returns/usecase/command"
	"github.com/tair/retail-inventory/internal/returns/usecase/query"
	"github.com/tair/retail-inventory/kafka"
	"github.com/tair/retail-inventory/pkg/database"
	"github.com/tair/retail-inventory/pkg/logger"
	"github.com/tair/retail-inventory/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "retail-backoffice")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting retail backoffice")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "retaildb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&catalogDomain.Product{},
		&catalogDomain.Category{},
		&catalogDomain.Supplier{},
		&orderDomain.SalesOrder{},
		&orderDomain.OrderItem{},
		&inventoryDomain.InventoryAdjustment{},
		&returnsDomain.Return{},
		&returnsDomain.Replace{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Kafka publisher for stock events
	var publisher command.StockEventPublisher
	var kafkaPublisher *kafka.Publisher
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		kafkaPublisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, stock events disabled")
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}

		// Low-stock watcher on the same topic
		startLowStockConsumer(brokers, db)
	}

	// Optional Redis cache for reports
	var cache *redis.Client
	redisAddr := getEnv("REDIS_ADDR", "")
	if redisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		logger.Logger.Info().Str("addr", redisAddr).Msg("Report cache enabled")
	}

	// Build handlers
	returnStore := returnsRepo.NewGormReturnStore(db)
	tracedStore := returnsRepo.NewGormReturnStoreWithTracing(db)
	reportRepo := returnsRepo.NewGormReportRepository(db)

	returnsHandler := returnsDelivery.NewReturnsHandler(
		command.NewCreateReturnHandler(returnStore, publisher),
		command.NewUpdateReturnHandler(returnStore, publisher),
		command.NewDeleteReturnHandler(returnStore, publisher),
		command.NewCreateOrderReplacementHandler(returnStore, publisher),
		command.NewCreateProductReplacementHandler(returnStore, publisher),
		query.NewListReturnsHandler(tracedStore),
		query.NewGetReturnHandler(returnStore),
		query.NewListReplacementsHandler(tracedStore),
		query.NewReportsHandler(reportRepo, cache),
	)

	catalogHandler := catalogDelivery.NewCatalogHandler(
		catalogRepo.NewGormProductRepository(db),
		catalogRepo.NewGormCategoryRepository(db),
		catalogRepo.NewGormSupplierRepository(db),
	)

	orderHandler := orderDelivery.NewOrderHandler(
		orderRepo.NewGormCheckoutStore(db),
		orderRepo.NewGormSalesOrderRepository(db),
	)

	adjustmentHandler := inventoryDelivery.NewAdjustmentHandler(
		inventoryRepo.NewGormAdjustmentRepository(db),
	)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	startHTTPServer(returnsHandler, catalogHandler, orderHandler, adjustmentHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startLowStockConsumer watches committed stock movements and logs when a
// product drops below the configured threshold.
func startLowStockConsumer(brokers []string, db *gorm.DB) {
	threshold, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))
	if err != nil {
		threshold = 5
	}

	consumer, err := kafka.NewConsumer(brokers, "retail-backoffice-low-stock", []string{kafka.TopicStockAdjusted})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka consumer, low-stock watcher disabled")
		return
	}

	consumer.RegisterHandler(kafka.EventTypeStockAdjusted, func(ctx context.Context, event kafka.StockAdjustedEvent) error {
		if event.NewQuantity >= threshold {
			return nil
		}

		var product catalogDomain.Product
		if err := db.WithContext(ctx).First(&product, event.ProductID).Error; err != nil {
			return err
		}

		logger.Warn(ctx).
			Uint("product_id", product.ID).
			Str("product_name", product.Name).
			Int("quantity_in_stock", event.NewQuantity).
			Int("threshold", threshold).
			Msg("Product stock below threshold")
		return nil
	})

	if err := consumer.Start(context.Background()); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
	}
}

func startHTTPServer(
	returnsHandler *returnsDelivery.ReturnsHandler,
	catalogHandler *catalogDelivery.CatalogHandler,
	orderHandler *orderDelivery.OrderHandler,
	adjustmentHandler *inventoryDelivery.AdjustmentHandler,
	db *sql.DB,
	port string,
) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	middlewareConfig := returnsDelivery.DefaultMiddlewareConfig()
	returnsDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	returnsHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	adjustmentHandler.RegisterRoutes(router)

	// Health check endpoint
	adjustmentHandler.RegisterHealthCheck(router, db)

	// Swagger documentation
	returnsDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := returnsDelivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
