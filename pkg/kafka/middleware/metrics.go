package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"assetbook/pkg/kafka"
)

// Metrics counts publish outcomes. The zero value is ready to use.
type Metrics struct {
	published     atomic.Int64
	failed        atomic.Int64
	durationTotal atomic.Int64 // nanoseconds
}

type MetricsSnapshot struct {
	Published          int64         `json:"published"`
	Failed             int64         `json:"failed"`
	AvgPublishDuration time.Duration `json:"avgPublishDurationNs"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	published := m.published.Load()
	snapshot := MetricsSnapshot{
		Published: published,
		Failed:    m.failed.Load(),
	}
	if published > 0 {
		snapshot.AvgPublishDuration = time.Duration(m.durationTotal.Load() / published)
	}
	return snapshot
}

func (m *Metrics) Reset() {
	m.published.Store(0)
	m.failed.Store(0)
	m.durationTotal.Store(0)
}

// MetricsProducerMiddleware records publish outcomes into m.
func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		if err != nil {
			m.failed.Add(1)
			return err
		}
		m.published.Add(1)
		m.durationTotal.Add(int64(time.Since(start)))
		return nil
	}
}
