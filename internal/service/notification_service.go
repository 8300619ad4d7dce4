package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/config"
	"github.com/thallyson03/ceapdesk/internal/events"
	"github.com/thallyson03/ceapdesk/internal/kafka"
)

// NotificationService fans domain events out to logs and the Kafka stream.
// Configured email and webhook channels are only logged.
type NotificationService struct {
	dispatcher events.Dispatcher
	producer   kafka.EventProducer
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. producer may be nil.
func NewNotificationService(dispatcher events.Dispatcher, producer kafka.EventProducer, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		producer:   producer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventSLAStatusChanged, n.handleSLAStatusChanged)
	n.dispatcher.Subscribe(events.EventHolidaysSeeded, n.handleHolidaysSeeded)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.forward(ctx, event.TicketID, event)
	return nil
}

func (n *NotificationService) handleSLAStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SLAStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.forward(ctx, event.TicketID, event)
	n.logEmailNotification(event)
	n.logWebhookNotification(event)
	return nil
}

func (n *NotificationService) handleHolidaysSeeded(ctx context.Context, event events.Event) error {
	n.logger.Info("HolidaysSeeded", zap.Any("payload", event.Payload))
	n.forward(ctx, string(event.Type), event)
	return nil
}

func (n *NotificationService) forward(ctx context.Context, key string, event events.Event) {
	if n.producer == nil {
		return
	}
	n.producer.Produce(ctx, key, event)
}

// logEmailNotification records the email that would go out. Delivery is not
// implemented.
func (n *NotificationService) logEmailNotification(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification not sent",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

// logWebhookNotification records the webhook call that would be made. Delivery
// is not implemented.
func (n *NotificationService) logWebhookNotification(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification not sent",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
