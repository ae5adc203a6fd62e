package messaging

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// channelPublisher is the part of *amqp091.Channel the publisher uses.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type workflowPublisher struct {
	mu      sync.Mutex
	Channel channelPublisher
	Queue   string
	Log     *zap.Logger
}

func NewWorkflowPublisher(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.WorkflowPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}
	return newWorkflowPublisher(channel, queue, logger), nil
}

func newWorkflowPublisher(channel channelPublisher, queue string, logger *zap.Logger) *workflowPublisher {
	return &workflowPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}
}

func (p *workflowPublisher) Publish(ctx context.Context, event *requests.WorkflowEvent) error {
	requestID := utils.GetRequestID(ctx)
	if event.ID == "" {
		event.ID = utils.GenerateRequestID()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		metrics.RecordWorkflowEventPublished(event.Type, err)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"event_type":       event.Type,
		"requeue_strategy": "DROP",
	}
	if requestID != "" {
		headers["request_id"] = requestID
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers:      headers,
	}

	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	metrics.RecordWorkflowEventPublished(event.Type, err)
	if err != nil {
		p.Log.Error("workflowPublisher.Publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, p.Queue),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Debug("workflowPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, p.Queue),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)
	return nil
}
