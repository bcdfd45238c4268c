package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"fundguard/pkg/domain"
)

// KafkaSink publishes audit events to a Kafka topic so external compliance
// consumers can subscribe without touching our database. It satisfies Store
// for the publish side; ListByCampaign is not supported on this sink.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaSink connects to the brokers and ensures the topic exists. Topic
// creation is idempotent; an already-exists response is not an error.
func NewKafkaSink(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, res := range resp {
		if err := topicEnsureError(res); err != nil {
			client.Close()
			return nil, err
		}
		if res.Err != nil {
			logger.Info("audit topic already present", "topic", res.Topic)
		}
	}

	return &KafkaSink{client: client, topic: topic, logger: logger}, nil
}

// topicEnsureError interprets a per-topic create response.
// TOPIC_ALREADY_EXISTS comes back as a per-topic error but means the ensure
// succeeded; anything else (authorization, policy) is a real failure.
func topicEnsureError(res kadm.CreateTopicResponse) error {
	if res.Err == nil || errors.Is(res.Err, kerr.TopicAlreadyExists) {
		return nil
	}
	return fmt.Errorf("create topic %s: %w", res.Topic, res.Err)
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.CampaignID.String()),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.ErrorContext(ctx, "audit publish failed",
				"topic", s.topic,
				"action", event.Action,
				"error", err,
			)
		}
	})
	return nil
}

func (s *KafkaSink) ListByCampaign(context.Context, domain.CampaignID) ([]Event, error) {
	return nil, fmt.Errorf("kafka sink does not support reads")
}

// Close flushes buffered records before releasing the client.
func (s *KafkaSink) Close(ctx context.Context) error {
	if err := s.client.Flush(ctx); err != nil {
		s.client.Close()
		return err
	}
	s.client.Close()
	return nil
}
