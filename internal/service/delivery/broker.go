// Package delivery 实现实时投递通道
// 语义：按接收者做服务端过滤的持续推送流，至多一次投递，
// 同一会话按落库顺序送达；只推新消息，不回放历史
package delivery

import (
	"context"
	"sync"

	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/pkg/constants"
	"peer_chat_server/pkg/errorx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pusher 消息推送入口
// 消息服务在消息成功落库后调用，投递是尽力而为的
type Pusher interface {
	Publish(ctx context.Context, msg *respond.MessageRespond) error
}

// Broker 实时投递通道
// 两种实现：ChannelBroker（单机进程内）、KafkaBroker（多实例经主题中转）
type Broker interface {
	Pusher
	// Subscribe 建立以 userId 为接收者谓词的订阅
	// 返回时订阅即已生效，此后匹配的落库消息都会进入订阅缓冲
	Subscribe(userId string) (*Subscription, error)
	// Unsubscribe 关闭订阅流，缓冲中未消费的消息被丢弃
	Unsubscribe(sub *Subscription)
	// Start 启动投递主循环
	Start()
	// Close 关闭代理资源
	Close()
}

// Subscription 一条订阅流
// C 只在 Unsubscribe 时关闭，消费方以 range 读取
type Subscription struct {
	Id     string
	UserId string
	C      chan *respond.MessageRespond
}

// registry 订阅注册表，按接收者 id 聚合
// 读写锁保护：Subscribe/Unsubscribe 同步生效，扇出只持读锁
type registry struct {
	mu   sync.RWMutex
	subs map[string]map[string]*Subscription
}

func newRegistry() *registry {
	return &registry{subs: make(map[string]map[string]*Subscription)}
}

func (r *registry) add(userId string) *Subscription {
	sub := &Subscription{
		Id:     uuid.NewString(),
		UserId: userId,
		C:      make(chan *respond.MessageRespond, constants.SUBSCRIBER_BUFFER),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs[userId] == nil {
		r.subs[userId] = make(map[string]*Subscription)
	}
	r.subs[userId][sub.Id] = sub
	return sub
}

func (r *registry) remove(sub *Subscription) {
	if sub == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userSubs, ok := r.subs[sub.UserId]
	if !ok {
		return
	}
	if _, ok := userSubs[sub.Id]; !ok {
		return
	}
	delete(userSubs, sub.Id)
	if len(userSubs) == 0 {
		delete(r.subs, sub.UserId)
	}
	// 扇出只在持读锁时写入，这里持写锁关闭是安全的
	close(sub.C)
}

// dispatch 将消息投递给接收者的所有活跃订阅
// 订阅缓冲满时丢弃该条（至多一次，不阻塞投递循环）
func (r *registry) dispatch(msg *respond.MessageRespond) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.subs[msg.ReceiverId] {
		select {
		case sub.C <- msg:
		default:
			zap.L().Warn("subscriber buffer full, dropping message",
				zap.String("user_id", sub.UserId),
				zap.String("message_uuid", msg.Uuid),
			)
		}
	}
}

func (r *registry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userId, userSubs := range r.subs {
		for id, sub := range userSubs {
			close(sub.C)
			delete(userSubs, id)
		}
		delete(r.subs, userId)
	}
}

// errBrokerClosed 投递循环已关闭后的发布错误
var errBrokerClosed = errorx.New(errorx.CodeSubscription, "投递通道已关闭")
