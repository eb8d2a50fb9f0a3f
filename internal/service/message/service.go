// Package message 实现消息业务逻辑
// 消息是只增不改的：发送即校验、落库、尽力推送，
// 历史读取严格按落库时间升序
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"peer_chat_server/internal/dao/mysql"
	myredis "peer_chat_server/internal/dao/redis"
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/internal/model"
	"peer_chat_server/internal/service/delivery"
	"peer_chat_server/pkg/constants"
	"peer_chat_server/pkg/errorx"
	"peer_chat_server/pkg/util/snowflake"
)

// SessionResolver 发送路径的会话解析依赖
// 请求未携带会话 id 时在发送时懒解析
type SessionResolver interface {
	ResolveOrCreateSession(userId, counterpartId string) (string, error)
}

// messageService 消息业务逻辑实现
type messageService struct {
	repos    *mysql.Repositories
	cache    myredis.AsyncCacheService
	resolver SessionResolver
	pusher   delivery.Pusher
}

// NewMessageService 构造函数
func NewMessageService(repos *mysql.Repositories, cache myredis.AsyncCacheService, resolver SessionResolver, pusher delivery.Pusher) *messageService {
	return &messageService{
		repos:    repos,
		cache:    cache,
		resolver: resolver,
		pusher:   pusher,
	}
}

// buildRespond 由消息模型构建响应
// 雪花 id 转为字符串，避免 JavaScript 侧整型精度丢失
func buildRespond(msg *model.Message) respond.MessageRespond {
	return respond.MessageRespond{
		Uuid:          strconv.FormatInt(msg.Uuid, 10),
		SessionId:     msg.SessionId,
		SenderId:      msg.SenderId,
		ReceiverId:    msg.ReceiverId,
		Content:       msg.Content,
		CorrelationId: msg.CorrelationId,
		CreatedAt:     msg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// messageListCacheKey 会话历史消息的缓存键
func messageListCacheKey(sessionId string) string {
	return "message_list_" + sessionId
}

// GetMessageList 按会话 id 获取历史消息
// 先读缓存，未命中回源数据库并异步回填；返回顺序即落库顺序
func (s *messageService) GetMessageList(sessionId string) ([]respond.MessageRespond, error) {
	ctx := context.Background()
	cacheKey := messageListCacheKey(sessionId)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var messageList []respond.MessageRespond
		if err := json.Unmarshal([]byte(cached), &messageList); err == nil {
			return messageList, nil
		}
		zap.L().Warn("历史消息缓存损坏", zap.String("key", cacheKey))
	}

	messages, err := s.repos.Message.FindBySessionId(sessionId)
	if err != nil {
		zap.L().Error("查询会话消息失败", zap.String("session_id", sessionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	messageList := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		messageList = append(messageList, buildRespond(&messages[i]))
	}

	if len(messageList) > 0 {
		if data, err := json.Marshal(messageList); err == nil {
			s.cache.SubmitTask(func() {
				if err := s.cache.Set(context.Background(), cacheKey, string(data), time.Minute*constants.REDIS_TIMEOUT); err != nil {
					zap.L().Warn("回填历史消息缓存失败", zap.String("key", cacheKey), zap.Error(err))
				}
			})
		}
	}
	return messageList, nil
}

// GetMessageListByPair 按收发双方获取历史消息
// 双向匹配，会话 id 未知时的回退读取路径
func (s *messageService) GetMessageListByPair(userId, counterpartId string) ([]respond.MessageRespond, error) {
	messages, err := s.repos.Message.FindByParticipants(userId, counterpartId)
	if err != nil {
		zap.L().Error("按参与者查询消息失败",
			zap.String("user_id", userId),
			zap.String("counterpart_id", counterpartId),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}
	messageList := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		messageList = append(messageList, buildRespond(&messages[i]))
	}
	return messageList, nil
}

// SendMessage 发送一条消息
// 校验 -> 懒解析会话 -> 落库 -> 尽力推送，返回含存储时间戳的权威回显
// 推送失败不回滚落库：消息已持久化，接收方可从历史读取补齐
func (s *messageService) SendMessage(senderId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	if len(content) > constants.MAX_CONTENT_LENGTH {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容过长")
	}
	if senderId == req.ReceiverId {
		return nil, errorx.New(errorx.CodeSelfReference, "不能给自己发送消息")
	}

	if _, err := s.repos.User.FindByUuid(req.ReceiverId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "接收用户不存在")
		}
		zap.L().Error("查询接收用户失败", zap.String("receiver_id", req.ReceiverId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	sessionId := req.SessionId
	if sessionId == "" {
		resolvedId, err := s.resolver.ResolveOrCreateSession(senderId, req.ReceiverId)
		if err != nil {
			return nil, err
		}
		sessionId = resolvedId
	}

	correlationId := req.CorrelationId
	if correlationId == "" {
		correlationId = uuid.NewString()
	}

	msg := &model.Message{
		Uuid:          snowflake.GenerateID(),
		SessionId:     sessionId,
		SenderId:      senderId,
		ReceiverId:    req.ReceiverId,
		Content:       content,
		CorrelationId: correlationId,
	}
	if err := s.repos.Message.Create(msg); err != nil {
		zap.L().Error("消息落库失败",
			zap.String("session_id", sessionId),
			zap.String("sender_id", senderId),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	rsp := buildRespond(msg)
	if err := s.pusher.Publish(context.Background(), &rsp); err != nil {
		zap.L().Warn("实时推送失败",
			zap.String("message_uuid", rsp.Uuid),
			zap.String("receiver_id", rsp.ReceiverId),
			zap.Error(err),
		)
	}

	// 历史缓存失效交给异步任务，不阻塞发送路径
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), messageListCacheKey(sessionId)); err != nil {
			zap.L().Warn("删除历史消息缓存失败", zap.String("session_id", sessionId), zap.Error(err))
		}
	})
	return &rsp, nil
}
