// Package events publishes low-stock alerts to Kafka for downstream
// alerting and reporting consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hendrawijaya/managestock/internal/inventory"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LowStockPublisher forwards LowStockEvents to a Kafka topic. It is wired
// as a Notifier subscriber, so publishing is best effort: a broker outage
// must not fail the stock mutation that triggered the event.
type LowStockPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewLowStockPublisher(brokers, topic string, logger *zap.Logger) *LowStockPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &LowStockPublisher{writer: writer, logger: logger}
}

// Handle implements the Notifier subscriber shape.
func (p *LowStockPublisher) Handle(e inventory.LowStockEvent) {
	payload, err := json.Marshal(e)
	if err != nil {
		p.logger.Error("failed to marshal low-stock event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(e.ProductCode),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish low-stock event",
			zap.String("product_code", e.ProductCode),
			zap.Error(err))
		return
	}

	p.logger.Info("low-stock event published",
		zap.String("product_code", e.ProductCode),
		zap.Int("stock", e.Stock))
}

func (p *LowStockPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
