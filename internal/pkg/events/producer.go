package events

import (
	"Inkstone/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Producer 向 Kafka 推送业务事件，未启用时为 nil，所有调用降级为空操作
type Producer struct {
	sync  sarama.SyncProducer
	topic string
}

// Event 业务事件载体
type Event struct {
	Type      string `json:"type"`
	UserID    uint64 `json:"user_id"`
	TargetID  uint64 `json:"target_id"`
	Timestamp int64  `json:"timestamp"`
}

const (
	EventBlogPublished = "blog.published"
	EventBlogDeleted   = "blog.deleted"
	EventBlogLiked     = "blog.liked"
	EventTweetPosted   = "tweet.posted"
	EventTweetLiked    = "tweet.liked"
	EventUserFollowed  = "user.followed"
)

func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForLocal
	c.Producer.Retry.Max = 3

	return c
}

// NewProducer 构建事件生产者，kafka 未启用时返回 nil
func NewProducer(kafkaCfg config.KafkaConfig) (*Producer, error) {
	if !kafkaCfg.Enable {
		return nil, nil
	}

	p, err := sarama.NewSyncProducer(kafkaCfg.Brokers, newSaramaConfig(kafkaCfg))
	if err != nil {
		return nil, err
	}

	return &Producer{sync: p, topic: kafkaCfg.Topic}, nil
}

// Publish 发送事件，生产者为 nil 时直接返回
func (p *Producer) Publish(ctx context.Context, eventType string, userID, targetID uint64) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(Event{
		Type:      eventType,
		UserID:    userID,
		TargetID:  targetID,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.ErrorContext(ctx, "事件序列化失败", log.String("type", eventType), log.Any("err", err))
		return
	}

	_, _, err = p.sync.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(eventType),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.ErrorContext(ctx, "事件发送失败", log.String("type", eventType), log.Any("err", err))
	}
}

// Close 关闭底层生产者
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.sync.Close()
}
