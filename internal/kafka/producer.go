package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/metrics"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

const publishTimeout = 5 * time.Second

// messageWriter is the part of kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
}

// NewProducer creates a Kafka producer
func NewProducer(brokerAddr, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokerAddr),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishReport sends a check report to Kafka, keyed by report ID.
func (p *Producer) PublishReport(ctx context.Context, report *sanity.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(report.ID),
		Value: data,
	})
	if err != nil {
		logrus.Errorf("Failed to publish report %s to Kafka: %v", report.ID, err)
		return errors.Wrap(err, "publish report")
	}

	metrics.ReportsPublished.Inc()
	return nil
}

// Close shuts down the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
