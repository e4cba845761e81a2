package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const producerName = "shop-api"

// KafkaPublisher は注文イベントをKafkaに非同期で流す
type KafkaPublisher struct {
	w   *kafka.Writer
	log *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		log: log,
	}
}

// Publish はイベントをEnvelopeに包んで送る。
// keyはorder_idなので同じ注文のイベントは同一パーティションに並ぶ
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, orderID int64, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("marshal event payload", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producerName,
		Payload:      body,
	}

	value, err := json.Marshal(env)
	if err != nil {
		p.log.Error("marshal event envelope", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		//イベントは業務処理の後追い。落ちてもログだけ
		p.log.Error("publish order event", zap.String("event_type", eventType), zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() {
	_ = p.w.Close()
}

// NopPublisher はKafka未設定のときに使う
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType string, orderID int64, payload any) {}
func (NopPublisher) Close()                                                                    {}
