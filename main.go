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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/cache"
	"github.com/romilkhanna/turing-backend/config"
	"github.com/romilkhanna/turing-backend/consumers"
	"github.com/romilkhanna/turing-backend/controllers"
	"github.com/romilkhanna/turing-backend/database"
	"github.com/romilkhanna/turing-backend/logger"
	"github.com/romilkhanna/turing-backend/rabbitmq"
	"github.com/romilkhanna/turing-backend/repository"
	"github.com/romilkhanna/turing-backend/routes"
	"github.com/romilkhanna/turing-backend/services"
	"github.com/romilkhanna/turing-backend/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		zl.Fatal("database initialization failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	shippingRepo := repository.NewShippingRepository(db)
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	cartService := services.NewCartService(cartRepo, zl)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, shippingRepo, zl)
	catalogService := services.NewCatalogService(catalogRepo, zl)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Warn("redis unavailable, product cache disabled", zap.Error(err))
		} else {
			catalogService.WithCache(cache.NewRedisCache(rdb, cfg.ProductCacheTTL))
		}
	}

	if cfg.RabbitMQURL != "" {
		rmq, err := rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			zl.Fatal("rabbitmq initialization failed", zap.Error(err))
		}
		defer rmq.Close()

		if err := rmq.SetupQueues(); err != nil {
			zl.Fatal("rabbitmq queue setup failed", zap.Error(err))
		}
		consumer := consumers.NewOrderConsumer(cfg, orderRepo, zl.Named("consumer"))
		if err := consumer.Start(ctx, rmq.Channel); err != nil {
			zl.Fatal("order consumer failed to start", zap.Error(err))
		}
		checkoutService.WithPublisher(rmq)
	}

	router := routes.NewRouter(routes.Handlers{
		Customers: controllers.NewCustomerController(services.NewCustomerService(customerRepo, jwtManager, zl)),
		Catalog:   controllers.NewCatalogController(catalogService),
		Shipping:  controllers.NewShippingController(services.NewShippingService(shippingRepo, zl)),
		Cart:      controllers.NewCartController(cartService),
		Orders:    controllers.NewOrderController(checkoutService, services.NewOrderService(orderRepo, zl)),
	}, jwtManager, zl, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
