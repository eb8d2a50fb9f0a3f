// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"peer_chat_server/internal/dao/mysql"
	myredis "peer_chat_server/internal/dao/redis"
	"peer_chat_server/internal/service/contact"
	"peer_chat_server/internal/service/delivery"
	"peer_chat_server/internal/service/message"
	"peer_chat_server/internal/service/session"
	"peer_chat_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过聚合访问各个 Service
type Services struct {
	User    UserService    // 用户 Service
	Contact ContactService // 联系人 Service
	Session SessionService // 会话 Service
	Message MessageService // 消息 Service
}

// NewServices 创建并注入所有 Service 实例
// repos: Repository 层聚合实例
// cache: 缓存服务
// pusher: 实时投递入口，消息落库后经此推送
func NewServices(repos *mysql.Repositories, cache myredis.AsyncCacheService, pusher delivery.Pusher) *Services {
	sessionSvc := session.NewSessionService(repos)
	return &Services{
		User:    user.NewUserService(repos),
		Contact: contact.NewContactService(repos, cache),
		Session: sessionSvc,
		Message: message.NewMessageService(repos, cache, sessionSvc, pusher),
	}
}
