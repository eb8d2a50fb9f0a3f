// Package mysql 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在 repository 子包中
package mysql

import (
	"peer_chat_server/internal/model"
)

// UserRepository 用户档案数据访问接口（本核心只读 + 在线状态）
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserProfile, error)
	// FindByEmail 根据邮箱查找用户（添加联系人的入口）
	FindByEmail(email string) (*model.UserProfile, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserProfile, error)
	// Create 创建用户档案（由身份服务注册流程调用）
	Create(user *model.UserProfile) error
	// UpdateOnline 更新在线状态标志
	UpdateOnline(uuid string, online bool) error
}

// ContactRepository 联系人关系数据访问接口
type ContactRepository interface {
	// FindByOwnerAndContact 根据拥有者和联系人查找边
	FindByOwnerAndContact(ownerId, contactId string) (*model.ContactEdge, error)
	// FindByOwnerId 查找拥有者的所有联系人边
	FindByOwnerId(ownerId string) ([]model.ContactEdge, error)
	// Create 创建联系人边
	Create(edge *model.ContactEdge) error
	// DeleteByOwnerAndContact 按过滤条件删除边，零匹配静默成功
	DeleteByOwnerAndContact(ownerId, contactId string) error
}

// SessionRepository 会话数据访问接口
type SessionRepository interface {
	// FindByPairKey 根据规范化参与者对键查找会话
	FindByPairKey(pairKey string) (*model.ChatSession, error)
	// FindByUuid 根据会话 UUID 查找会话
	FindByUuid(uuid string) (*model.ChatSession, error)
	// FindByParticipant 查找用户参与的所有会话
	FindByParticipant(userId string) ([]model.ChatSession, error)
	// Create 创建会话，pair_key 唯一键冲突时返回 CodeAlreadyExists
	Create(session *model.ChatSession) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// FindBySessionId 按会话查找消息，created_at 严格升序
	FindBySessionId(sessionId string) ([]model.Message, error)
	// FindByParticipants 按收发双方（双向）查找消息，同样升序
	FindByParticipants(userOneId, userTwoId string) ([]model.Message, error)
	// FindSessionIdByParticipants 从双方既有消息中提取已关联的会话 id
	// 没有则返回空字符串（旧数据的会话解析回退路径）
	FindSessionIdByParticipants(userOneId, userTwoId string) (string, error)
	// FindLatestByParticipant 查找用户收发的全部消息，created_at 降序（会话列表用）
	FindLatestByParticipant(userId string) ([]model.Message, error)
	// Create 创建消息，created_at 由存储层赋值
	Create(message *model.Message) error
}
