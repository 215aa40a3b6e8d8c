package config

import (
	"studiobook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "studiobook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "payout-reports"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/Toronto"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			FrontendBaseUrl:            utils.GetEnvString("APP_FRONTEND_BASE_URL", "http://localhost:3000"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			SuperadminAPIKey:           utils.GetEnvString("APP_SUPERADMIN_API_KEY", ""),
		},
		Stripe: Stripe{
			SecretKey:                utils.GetEnvString("STRIPE_SECRET_KEY", ""),
			WebhookSecret:            utils.GetEnvString("STRIPE_WEBHOOK_SECRET", ""),
			TransferTimeoutInSeconds: utils.GetEnvInt("STRIPE_TRANSFER_TIMEOUT_IN_SECONDS", 15),
			WebhookEventsPerSecond:   utils.GetEnvFloat("STRIPE_WEBHOOK_EVENTS_PER_SECOND", 50),
			WebhookBurst:             utils.GetEnvInt("STRIPE_WEBHOOK_BURST", 100),
		},
		Payout: Payout{
			CommissionRate:       utils.GetEnvFloat("PAYOUT_COMMISSION_RATE", 0.15),
			Currency:             utils.GetEnvString("PAYOUT_CURRENCY", "usd"),
			LockTTLInSeconds:     utils.GetEnvInt("PAYOUT_LOCK_TTL_IN_SECONDS", 300),
			ReportQueue:          utils.GetEnvString("PAYOUT_REPORT_QUEUE", "payout_report_queue"),
			HistoryPageSize:      utils.GetEnvInt("PAYOUT_HISTORY_PAGE_SIZE", 20),
		},
	}
}
