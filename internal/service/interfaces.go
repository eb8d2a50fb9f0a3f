// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层和 WebSocket 网关调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/dto/respond"
)

// UserService 用户业务接口
// 本服务只读取身份服务落地的用户档案，不做注册和凭证管理
type UserService interface {
	// GetUserInfo 获取单个用户档案
	GetUserInfo(userId string) (*respond.UserInfoRespond, error)
	// SetOnline 设置在线状态标志
	SetOnline(userId string, online bool) error
}

// ContactService 联系人业务接口
// 联系人边是单向的：A 添加 B 不会让 B 的列表出现 A
type ContactService interface {
	// IsContact 判断 contactId 是否在 ownerId 的联系人列表中
	IsContact(ownerId, contactId string) (bool, error)
	// AddContact 按邮箱添加联系人
	AddContact(ownerId string, req request.AddContactRequest) (*respond.ContactRespond, error)
	// RemoveContact 删除联系人，目标不在列表中时静默成功
	RemoveContact(ownerId, contactId string) error
	// GetContactList 获取联系人列表，按显示名称排序
	GetContactList(ownerId string) ([]respond.ContactRespond, error)
	// GetCounterpartInfo 获取聊天对端信息，显示名称经过联系人门控
	GetCounterpartInfo(ownerId, counterpartId string) (*respond.CounterpartInfoRespond, error)
}

// SessionService 会话业务接口
// 一对用户之间最多存在一个会话，解析操作是幂等且对称的
type SessionService interface {
	// ResolveOrCreateSession 找到或创建两个用户之间的唯一会话
	ResolveOrCreateSession(userId, counterpartId string) (string, error)
	// GetSessionList 获取用户的会话列表，按最近消息时间降序
	GetSessionList(userId string) ([]respond.SessionListRespond, error)
}

// MessageService 消息业务接口
type MessageService interface {
	// GetMessageList 按会话 id 获取历史消息，严格升序
	GetMessageList(sessionId string) ([]respond.MessageRespond, error)
	// GetMessageListByPair 按收发双方获取历史消息（会话 id 未知时的回退）
	GetMessageListByPair(userId, counterpartId string) ([]respond.MessageRespond, error)
	// SendMessage 校验、落库并推送一条消息，返回权威回显
	SendMessage(senderId string, req request.SendMessageRequest) (*respond.MessageRespond, error)
}
