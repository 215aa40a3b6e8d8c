package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Router         *chi.Mux
		MongoDB        *mongo.Client
		Redis          *redis.Client
		RabbitMQ       *amqp091.Connection
		Minio          *minio.Client
		Logger         *logrus.Logger
		ZapLogger      *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	InternalConfig struct {
		App    App
		Stripe Stripe
		Payout Payout
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		BaseUrl                    string
		FrontendBaseUrl            string
		MaxRequests                int
		ShutdownTimeout            int
		RequestBodyLimitInMegabyte int
		SuperadminAPIKey           string
	}

	Stripe struct {
		SecretKey                string
		WebhookSecret            string
		TransferTimeoutInSeconds int
		WebhookEventsPerSecond   float64
		WebhookBurst             int
	}

	Payout struct {
		CommissionRate   float64
		Currency         string
		LockTTLInSeconds int
		ReportQueue      string
		HistoryPageSize  int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if err := b.MongoDB.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("Successfully closing MongoDB")

	if err := b.Redis.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if err := b.RabbitMQ.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	if err := b.ZapLogger.Sync(); err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
