package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/internal/config"
	"github.com/khoahotran/skillsync/pkg/logger"
)

const (
	TopicProfileEvents = "profile.events"
	ProgressGroupID    = "profile-progress-group"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

func NewKafkaPublisher(cfg config.Config, log logger.Logger) (*KafkaPublisher, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Kafka producer initialized", zap.Strings("brokers", brokers), zap.String("topic", TopicProfileEvents))
	return &KafkaPublisher{writer: writer, logger: log}, nil
}

var _ service.EventPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishProfileEvent(ctx context.Context, evt service.ProfileEvent) error {
	msg, err := NewMessage(evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write profile event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka producer", err)
		return
	}
	p.logger.Info("Closed Kafka producer")
}

// NewMessage keys the message by session so one session's events stay in
// order on a single partition.
func NewMessage(evt service.ProfileEvent) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal profile event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.SessionID),
		Value: value,
		Time:  evt.OccurredAt,
	}, nil
}

func DecodeProfileEvent(value []byte) (service.ProfileEvent, error) {
	var evt service.ProfileEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return service.ProfileEvent{}, fmt.Errorf("unmarshal profile event: %w", err)
	}
	return evt, nil
}

// NoopPublisher drops every event. It stands in when no brokers are
// configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishProfileEvent(context.Context, service.ProfileEvent) error {
	return nil
}
