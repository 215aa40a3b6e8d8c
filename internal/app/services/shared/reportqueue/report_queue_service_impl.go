package reportqueue

import (
	"context"
	"fmt"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/responses"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"
	"sync"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type reportQueueService struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

var (
	reportQueueServiceInstance *reportQueueService
	onceReportQueueService     sync.Once
)

// NewReportQueueService opens a channel, declares the durable report queue and
// enables publisher confirms so a publish either lands on disk or errors.
func NewReportQueueService(conn *amqp.Connection, log *zap.Logger, queueName string) (contracts.ReportPublisher, error) {
	var initErr error
	onceReportQueueService.Do(func() {
		ch, err := conn.Channel()
		if err != nil {
			initErr = err
			return
		}

		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			initErr = err
			return
		}

		if err := ch.Qos(1, 0, false); err != nil {
			initErr = err
			return
		}

		if err := ch.Confirm(false); err != nil {
			initErr = err
			return
		}

		reportQueueServiceInstance = &reportQueueService{
			ch:        ch,
			log:       log,
			queueName: queueName,
			confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return reportQueueServiceInstance, nil
}

// PublishBatchReport publishes the report as a persistent JSON message and
// waits for the broker confirmation.
func (s *reportQueueService) PublishBatchReport(ctx context.Context, report *responses.BatchReport) error {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ReportQueue.PublishBatchReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBatchIDKey, report.BatchID),
	)

	body, err := json.Marshal(report)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}
	return nil
}
