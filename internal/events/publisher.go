package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/config"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/pkg/pool"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/pkg/retry"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock_test.go -package=events

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Metrics interface {
	ObserveKafka(processMs float64, ok bool)
}

// KafkaPublisher hands events to a worker pool which writes them to Kafka with
// retries. Publish never waits for the broker and never fails: events that find
// the queue full or the publisher closed are dropped, logged and counted as
// failed writes.
type KafkaPublisher struct {
	writer  Writer
	pool    *pool.Pool
	retry   config.Retry
	timeout time.Duration
	logger  *zap.Logger
	metrics Metrics
}

func NewWriter(cfg config.Kafka) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer Writer, workers int, retryPolicy config.Retry, logger *zap.Logger, metrics Metrics) *KafkaPublisher {
	return &KafkaPublisher{
		writer:  writer,
		pool:    pool.New(workers),
		retry:   retryPolicy,
		timeout: 10 * time.Second,
		logger:  logger,
		metrics: metrics,
	}
}

func (p *KafkaPublisher) Publish(_ context.Context, evts ...OrderEvent) {
	for _, evt := range evts {
		evt := evt
		if p.pool.TrySubmit(func() { p.write(evt) }) {
			continue
		}
		p.metrics.ObserveKafka(0, false)
		p.logger.Warn("order event dropped, publish queue full or closed",
			zap.String("event_type", string(evt.Type)),
			zap.String("event_id", evt.EventID),
			zap.String("order_id", evt.OrderID),
		)
	}
}

func (p *KafkaPublisher) write(evt OrderEvent) {
	// Request contexts are gone by the time the job runs.
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	err := retry.Do(ctx, p.retry, func() error {
		msg, err := encode(evt)
		if err != nil {
			return retry.Permanent(err)
		}
		return p.writer.WriteMessages(ctx, msg)
	})
	elapsed := time.Since(start)
	p.metrics.ObserveKafka(float64(elapsed.Microseconds())/1000, err == nil)

	if err != nil {
		p.logger.Error("order event publish failed",
			zap.Error(err),
			zap.String("event_type", string(evt.Type)),
			zap.String("event_id", evt.EventID),
			zap.String("order_id", evt.OrderID),
		)
		return
	}
	p.logger.Debug("order event published",
		zap.String("event_type", string(evt.Type)),
		zap.String("order_id", evt.OrderID),
		zap.Duration("elapsed", elapsed),
	)
}

// Close waits for queued events and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.pool.Close()
	p.pool.Wait()
	return p.writer.Close()
}

func encode(evt OrderEvent) (kafkago.Message, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   []byte(evt.OrderID),
		Value: data,
		Time:  evt.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}, nil
}

// Noop drops events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, ...OrderEvent) {}
func (Noop) Close() error                           { return nil }
