package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("bk_1").
		WithEventType("booking.intent.save").
		WithCorrelationID("req-1").
		WithValue(map[string]string{"name": "Photo shoot"}).
		Build()
	require.NoError(t, err)
	return msg
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, nil, "booking-intents", "")

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))

	require.Len(t, writer.messages, 1)
	got := writer.messages[0]
	assert.Equal(t, "bk_1", string(got.Key))
	assert.JSONEq(t, `{"name":"Photo shoot"}`, string(got.Value))
	assert.Equal(t, "booking.intent.save", headerValue(got, HeaderEventType))
	assert.Equal(t, "req-1", headerValue(got, HeaderCorrelationID))
	assert.NotEmpty(t, headerValue(got, HeaderEventID))
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := newProducer(&fakeWriter{}, nil, "booking-intents", "")

	msg := buildMessage(t)
	msg.Key = ""
	assert.ErrorIs(t, p.Publish(context.Background(), msg), ErrEmptyKey)

	msg = buildMessage(t)
	msg.Value = nil
	assert.ErrorIs(t, p.Publish(context.Background(), msg), ErrEmptyValue)
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := newProducer(&fakeWriter{}, nil, "booking-intents", "")

	var calls []string
	record := func(name string) ProducerMiddleware {
		return func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			calls = append(calls, name+":"+msg.Topic)
			return next(ctx, msg)
		}
	}
	p.Use(record("outer"))
	p.Use(record("inner"))

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))
	assert.Equal(t, []string{"outer:booking-intents", "inner:booking-intents"}, calls)
}

func TestProducer_FailedPublishGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	writer := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := newProducer(writer, dlq, "booking-intents", "booking-intents-dlq")
	msg := buildMessage(t)

	err := p.Publish(context.Background(), msg)

	assert.ErrorIs(t, err, writeErr)
	require.Len(t, dlq.messages, 1)
	parked := dlq.messages[0]
	assert.Equal(t, "booking-intents", headerValue(parked, HeaderOriginalTopic))
	assert.Equal(t, "leader not available", headerValue(parked, HeaderDLQError))
	assert.Equal(t, msg.GetEventID(), headerValue(parked, HeaderEventID))
	_, mutated := msg.Headers[HeaderDLQError]
	assert.False(t, mutated, "caller's headers must not change")
}

func TestProducer_DLQFailure(t *testing.T) {
	writeErr := errors.New("leader not available")
	p := newProducer(&fakeWriter{err: writeErr}, &fakeWriter{err: errors.New("dlq down")}, "t", "t-dlq")

	err := p.Publish(context.Background(), buildMessage(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "dlq down")
}

func TestProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	dlq := &fakeWriter{}
	p := newProducer(writer, dlq, "t", "t-dlq")

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.True(t, dlq.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), buildMessage(t)), ErrProducerClosed)
}

func TestMessageBuilder_InvalidValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestMessageBuilder_DefaultsHeaders(t *testing.T) {
	msg, err := NewMessage().WithKey("k").WithValue("v").WithEventID("").Build()
	require.NoError(t, err)

	assert.NotEmpty(t, msg.GetEventID())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])
	assert.Empty(t, msg.GetCorrelationID())

	var decoded string
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, "v", decoded)
}
