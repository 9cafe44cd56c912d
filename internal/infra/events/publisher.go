package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrPublish ошибка отправки события
	ErrPublish = errors.New("events: failed to publish")
)

// MessageWriter часть kafka.Writer, которой пользуется издатель
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события жизненного цикла брони в Kafka.
// Ключ сообщения - ID парковки, чтобы события одной парковки шли в одну партицию
type Producer struct {
	writer MessageWriter
	topic  string
}

// NewProducer создаёт издателя поверх kafka.Writer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return NewProducerWithWriter(writer, topic)
}

// NewProducerWithWriter создаёт издателя с произвольным writer
func NewProducerWithWriter(writer MessageWriter, topic string) *Producer {
	return &Producer{writer: writer, topic: topic}
}

// Publish отправляет событие
func (p *Producer) Publish(ctx context.Context, event domain.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: Publish - encode: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.LotID.String()),
		Value: data,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: Publish - write: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Nop издатель-заглушка, когда Kafka выключена
type Nop struct{}

func (Nop) Publish(context.Context, domain.BookingEvent) error { return nil }
func (Nop) Close() error { return nil }
