package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/delivery/http/controllers"
	"studiobook-service/internal/app/delivery/http/middlewares"
	"studiobook-service/internal/app/delivery/http/routers"
	"studiobook-service/internal/app/drivers/database"
	"studiobook-service/internal/app/drivers/logger"
	"studiobook-service/internal/app/drivers/messaging"
	"studiobook-service/internal/app/drivers/storage"
	"studiobook-service/internal/app/services/core/accounts"
	"studiobook-service/internal/app/services/core/connect"
	"studiobook-service/internal/app/services/core/payouts"
	"studiobook-service/internal/app/services/core/webhooks"
	"studiobook-service/internal/app/services/shared/locker"
	redisrepo "studiobook-service/internal/app/services/shared/redis"
	"studiobook-service/internal/app/services/shared/reportqueue"
	minioarchive "studiobook-service/internal/app/services/shared/storage"
	stripeprovider "studiobook-service/internal/app/services/shared/stripe"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         log,
		ZapLogger:      zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapTheApp(bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error closing connections: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) error {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.ZapLogger)
	paymentProvider := stripeprovider.NewStripeProvider(bootstrap.InternalConfig, bootstrap.ZapLogger)

	reportPublisher, err := reportqueue.NewReportQueueService(
		bootstrap.RabbitMQ,
		bootstrap.ZapLogger,
		bootstrap.InternalConfig.Payout.ReportQueue,
	)
	if err != nil {
		return err
	}
	reportArchive := minioarchive.NewMinioReportArchive(
		bootstrap.Minio,
		bootstrap.ZapLogger,
		bootstrap.DriverConfig.Minio.BucketName,
	)

	// Repositories
	bookingRepository := payouts.NewBookingMongoRepository(bootstrap.MongoDB, dbName)
	payoutHistoryRepository := payouts.NewPayoutHistoryMongoRepository(bootstrap.MongoDB, dbName)
	stripeAccountRepository := accounts.NewStripeAccountMongoRepository(bootstrap.MongoDB, dbName)
	onboardingRepository := accounts.NewOnboardingSubmissionMongoRepository(bootstrap.MongoDB, dbName)
	bankPayoutRepository := webhooks.NewBankPayoutMongoRepository(bootstrap.MongoDB, dbName)

	paymentEventRepository, err := webhooks.NewPaymentEventMongoRepository(bootstrap.MongoDB, dbName)
	if err != nil {
		return err
	}
	transferRecordRepository, err := webhooks.NewTransferRecordMongoRepository(bootstrap.MongoDB, dbName)
	if err != nil {
		return err
	}

	// Usecases
	payoutUsecase := payouts.NewPayoutUsecase(
		bookingRepository,
		payoutHistoryRepository,
		stripeAccountRepository,
		paymentProvider,
		lockService,
		reportPublisher,
		reportArchive,
		bootstrap.InternalConfig,
		bootstrap.ZapLogger,
	)
	webhookUsecase := webhooks.NewWebhookUsecase(
		paymentProvider,
		bookingRepository,
		paymentEventRepository,
		transferRecordRepository,
		bankPayoutRepository,
		stripeAccountRepository,
		onboardingRepository,
		bootstrap.ZapLogger,
	)
	connectUsecase := connect.NewConnectUsecase(
		paymentProvider,
		stripeAccountRepository,
		onboardingRepository,
		bootstrap.InternalConfig,
		bootstrap.ZapLogger,
	)

	// Delivery
	middlewareInstance := &middlewares.Middlewares{
		Log:            bootstrap.ZapLogger,
		InternalConfig: bootstrap.InternalConfig,
	}
	bootstrap.Router.Use(middlewareInstance.RequestIDMiddleware)
	bootstrap.Router.Use(middlewareInstance.Logging(bootstrap.ZapLogger))

	payoutController := controllers.NewPayoutController(bootstrap.ZapLogger, payoutUsecase, bootstrap.InternalConfig)
	webhookController := controllers.NewWebhookController(bootstrap.ZapLogger, webhookUsecase, bootstrap.InternalConfig)
	connectController := controllers.NewConnectController(bootstrap.ZapLogger, connectUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewareInstance,
		payoutController,
		webhookController,
		connectController,
	)
	return nil
}
