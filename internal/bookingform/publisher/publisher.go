package publisher

import (
	"context"
	"fmt"

	"assetbook/pkg/kafka"
	"assetbook/pkg/logger"
	"assetbook/pkg/model"
)

const (
	EventTypePrefix = "booking.intent."
	SchemaVersion   = "1"

	HeaderOrganizationID = "organization-id"
)

type IntentPublisher interface {
	Publish(ctx context.Context, submission *model.Submission, correlationID string) error
}

// MessagePublisher is the part of *kafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaIntentPublisher struct {
	producer MessagePublisher
	source   string
}

func NewKafkaIntentPublisher(producer MessagePublisher, source string) IntentPublisher {
	return &kafkaIntentPublisher{producer: producer, source: source}
}

func EventType(intent model.Intent) string {
	return EventTypePrefix + string(intent)
}

// Key orders events per booking. Creations have no booking id yet and are
// keyed by their submission id.
func Key(submission *model.Submission) string {
	if submission.BookingID != "" {
		return submission.BookingID
	}
	return submission.ID
}

func (p *kafkaIntentPublisher) Publish(ctx context.Context, submission *model.Submission, correlationID string) error {
	builder := kafka.NewMessage()
	if submission.OrganizationID != "" {
		builder.WithHeader(HeaderOrganizationID, submission.OrganizationID)
	}
	msg, err := builder.
		WithKey(Key(submission)).
		WithEventID(submission.ID).
		WithEventType(EventType(submission.Intent)).
		WithCorrelationID(correlationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithValue(submission).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build intent message: %w", err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventType(submission.Intent), err)
	}
	return nil
}

type noopIntentPublisher struct {
	logger *logger.Logger
}

// NewNoopIntentPublisher logs intents instead of publishing them. Used when no
// brokers are configured.
func NewNoopIntentPublisher(log *logger.Logger) IntentPublisher {
	return &noopIntentPublisher{logger: log}
}

func (p *noopIntentPublisher) Publish(_ context.Context, submission *model.Submission, correlationID string) error {
	p.logger.Debug("Booking intent not published, no brokers configured",
		"submission_id", submission.ID,
		"intent", submission.Intent,
		"booking_id", submission.BookingID,
		"correlation_id", correlationID,
	)
	return nil
}
