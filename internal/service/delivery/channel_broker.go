// channel_broker.go
// 单机模式下的投递实现：消息经进程内通道串行扇出，
// 不依赖外部消息队列，适合单实例部署或开发环境
package delivery

import (
	"context"

	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/pkg/constants"
)

// ChannelBroker 进程内投递通道
// Publish 把消息写入 transmit 通道，Start 主循环按序取出并扇出，
// 串行消费保证同一接收者看到的顺序即落库顺序
type ChannelBroker struct {
	registry *registry
	transmit chan *respond.MessageRespond
	done     chan struct{}
}

// NewChannelBroker 创建进程内投递通道
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		registry: newRegistry(),
		transmit: make(chan *respond.MessageRespond, constants.CHANNEL_SIZE),
		done:     make(chan struct{}),
	}
}

// Publish 发布消息到投递循环
func (b *ChannelBroker) Publish(ctx context.Context, msg *respond.MessageRespond) error {
	select {
	case <-b.done:
		return errBrokerClosed
	case b.transmit <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe 建立接收者订阅，返回时订阅已生效
func (b *ChannelBroker) Subscribe(userId string) (*Subscription, error) {
	select {
	case <-b.done:
		return nil, errBrokerClosed
	default:
	}
	return b.registry.add(userId), nil
}

// Unsubscribe 关闭订阅流
func (b *ChannelBroker) Unsubscribe(sub *Subscription) {
	b.registry.remove(sub)
}

// Start 启动投递主循环
func (b *ChannelBroker) Start() {
	for {
		select {
		case <-b.done:
			return
		case msg, ok := <-b.transmit:
			if !ok {
				return
			}
			b.registry.dispatch(msg)
		}
	}
}

// Close 关闭投递循环并断开所有订阅
func (b *ChannelBroker) Close() {
	close(b.done)
	b.registry.closeAll()
}

var _ Broker = (*ChannelBroker)(nil)
