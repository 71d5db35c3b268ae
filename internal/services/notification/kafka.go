package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer the notifier needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes events as JSON keyed by booking id, so all events
// of one booking land on the same partition.
type KafkaNotifier struct {
	writer MessageWriter
	topic  string
	log    *zap.Logger
}

// Events are published one at a time from request handlers, so the writer
// must not hold a message waiting for a batch to fill.
const (
	writerBatchTimeout = 10 * time.Millisecond
	writerWriteTimeout = 2 * time.Second
)

// NewKafkaWriter returns a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: writerBatchTimeout,
		WriteTimeout: writerWriteTimeout,
	}
}

func NewKafkaNotifier(writer MessageWriter, topic string, log *zap.Logger) *KafkaNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("kafka")
	log.Info("payment event producer initialized", zap.String("topic", topic))
	return &KafkaNotifier{writer: writer, topic: topic, log: log}
}

func (n *KafkaNotifier) Notify(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.BookingID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.log.Error("failed to publish event", zap.String("type", e.Type), zap.Error(err))
		return fmt.Errorf("failed to publish %s: %w", e.Type, err)
	}

	n.log.Debug("published event", zap.String("type", e.Type), zap.String("booking_id", e.BookingID))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
