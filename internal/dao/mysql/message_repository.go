package mysql

import (
	"errors"

	"peer_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func newMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindBySessionId 按会话查找消息
// created_at 严格升序，相同时间戳按插入顺序（主键）排
func (r *messageRepository) FindBySessionId(sessionId string) ([]model.Message, error) {
	messages := []model.Message{}
	if err := r.db.Where("session_id = ?", sessionId).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 session_id=%s", sessionId)
	}
	return messages, nil
}

// FindByParticipants 按收发双方查找消息（双向），升序
func (r *messageRepository) FindByParticipants(userOneId, userTwoId string) ([]model.Message, error) {
	messages := []model.Message{}
	if err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 user1=%s user2=%s", userOneId, userTwoId)
	}
	return messages, nil
}

// FindSessionIdByParticipants 从双方既有消息中提取已关联的会话 id
// 没有则返回空字符串，不作为错误
func (r *messageRepository) FindSessionIdByParticipants(userOneId, userTwoId string) (string, error) {
	var message model.Message
	err := r.db.Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND session_id <> ''",
		userOneId, userTwoId, userTwoId, userOneId).Limit(1).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", wrapDBErrorf(err, "查询会话id user1=%s user2=%s", userOneId, userTwoId)
	}
	return message.SessionId, nil
}

// FindLatestByParticipant 查找用户收发的全部消息，降序（会话列表取每会话最新一条）
func (r *messageRepository) FindLatestByParticipant(userId string) ([]model.Message, error) {
	messages := []model.Message{}
	if err := r.db.Where("sender_id = ? OR receiver_id = ?", userId, userId).Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户消息 user_id=%s", userId)
	}
	return messages, nil
}

// Create 创建消息，created_at 由存储层赋值
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}
