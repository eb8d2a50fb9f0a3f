// kafka_broker.go
// 多实例模式下的投递实现：落库后的消息发布到 Kafka 主题，
// 每个实例消费同一主题并向本地订阅者扇出
package delivery

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"peer_chat_server/internal/config"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/pkg/errorx"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker Kafka 投递通道
type KafkaBroker struct {
	registry *registry
	producer *kafka.Writer
	consumer *kafka.Reader
	cancel   context.CancelFunc
	ctx      context.Context
}

// NewKafkaBroker 创建 Kafka 投递通道
// 每个实例使用独立的消费组 id，使主题消息广播到所有实例
func NewKafkaBroker(instanceId string) *KafkaBroker {
	kafkaConfig := config.GetConfig().KafkaConfig
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaBroker{
		registry: newRegistry(),
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.ChatTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: true,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.ChatTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        "peer_chat_delivery_" + instanceId,
			StartOffset:    kafka.LastOffset,
		}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Publish 序列化消息并写入 Kafka 主题
// 以接收者 id 为分区键，保证同一接收者的消息进入同一分区、保持写入顺序
func (b *KafkaBroker) Publish(ctx context.Context, msg *respond.MessageRespond) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeSubscription, "序列化推送消息失败")
	}
	if err := b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ReceiverId),
		Value: value,
	}); err != nil {
		return errorx.Wrap(err, errorx.CodeSubscription, "发布推送消息失败")
	}
	return nil
}

// Subscribe 建立接收者订阅
func (b *KafkaBroker) Subscribe(userId string) (*Subscription, error) {
	select {
	case <-b.ctx.Done():
		return nil, errBrokerClosed
	default:
	}
	return b.registry.add(userId), nil
}

// Unsubscribe 关闭订阅流
func (b *KafkaBroker) Unsubscribe(sub *Subscription) {
	b.registry.remove(sub)
}

// Start 消费循环：从主题读取消息并向本地订阅者扇出
func (b *KafkaBroker) Start() {
	for {
		kafkaMessage, err := b.consumer.ReadMessage(b.ctx)
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			zap.L().Error("kafka read message failed", zap.Error(err))
			continue
		}
		var msg respond.MessageRespond
		if err := json.Unmarshal(kafkaMessage.Value, &msg); err != nil {
			zap.L().Error("kafka message unmarshal failed",
				zap.Error(err),
				zap.String("offset", strconv.FormatInt(kafkaMessage.Offset, 10)),
			)
			continue
		}
		b.registry.dispatch(&msg)
	}
}

// Close 关闭消费循环、Kafka 连接和所有订阅
func (b *KafkaBroker) Close() {
	b.cancel()
	if err := b.producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	b.registry.closeAll()
}

var _ Broker = (*KafkaBroker)(nil)
