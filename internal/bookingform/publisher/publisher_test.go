package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"assetbook/pkg/kafka"
	"assetbook/pkg/logger"
	"assetbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, msg)
	}
	return nil
}

func TestKafkaIntentPublisher_Publish(t *testing.T) {
	var published kafka.Message
	producer := &mockProducer{publishFunc: func(_ context.Context, msg kafka.Message) error {
		published = msg
		return nil
	}}
	p := NewKafkaIntentPublisher(producer, "booking-form")

	submission := &model.Submission{
		ID:             "sub_1",
		Intent:         model.IntentReserve,
		BookingID:      "bk_1",
		Status:         model.StatusDraft,
		Input:          &model.BookingInput{ID: "bk_1", Name: "Photo shoot"},
		OrganizationID: "org_1",
	}

	require.NoError(t, p.Publish(context.Background(), submission, "req-9"))

	assert.Equal(t, "bk_1", published.Key)
	assert.Equal(t, "sub_1", published.GetEventID())
	assert.Equal(t, "booking.intent.reserve", published.GetEventType())
	assert.Equal(t, "req-9", published.GetCorrelationID())
	assert.Equal(t, "org_1", published.Headers[HeaderOrganizationID])
	assert.Equal(t, "booking-form", published.Headers[kafka.HeaderSource])
	assert.Equal(t, SchemaVersion, published.Headers[kafka.HeaderSchemaVersion])

	var decoded model.Submission
	require.NoError(t, json.Unmarshal(published.Value, &decoded))
	assert.Equal(t, "Photo shoot", decoded.Input.Name)
	assert.Equal(t, model.IntentReserve, decoded.Intent)
}

func TestKafkaIntentPublisher_CreationKeyedBySubmission(t *testing.T) {
	submission := &model.Submission{ID: "sub_2", Intent: model.IntentCreate}
	assert.Equal(t, "sub_2", Key(submission))
	assert.Equal(t, "booking.intent.create", EventType(submission.Intent))
}

func TestKafkaIntentPublisher_WrapsProducerError(t *testing.T) {
	producerErr := errors.New("broker unavailable")
	p := NewKafkaIntentPublisher(&mockProducer{publishFunc: func(context.Context, kafka.Message) error {
		return producerErr
	}}, "booking-form")

	err := p.Publish(context.Background(), &model.Submission{ID: "sub_3", Intent: model.IntentCancel, BookingID: "bk_3"}, "")

	assert.ErrorIs(t, err, producerErr)
	assert.Contains(t, err.Error(), "booking.intent.cancel")
}

func TestNoopIntentPublisher(t *testing.T) {
	p := NewNoopIntentPublisher(logger.Nop())
	assert.NoError(t, p.Publish(context.Background(), &model.Submission{ID: "sub_4", Intent: model.IntentSave}, "req"))
}
